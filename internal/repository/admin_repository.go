package repository

import (
	"context"
	"fmt"
	"net/http"

	"github.com/noah-isme/afterschool-console/internal/dto"
	"github.com/noah-isme/afterschool-console/internal/models"
	"github.com/noah-isme/afterschool-console/pkg/backend"
)

type backendDoer interface {
	Do(ctx context.Context, req backend.Request) error
}

// AdminRepository calls the admin endpoints of the backend on behalf of one
// session credential.
type AdminRepository struct {
	client backendDoer
	token  string
}

// NewAdminRepository binds the admin API to a bearer token.
func NewAdminRepository(client backendDoer, token string) *AdminRepository {
	return &AdminRepository{client: client, token: token}
}

// ListUsers returns the roster; role and name are pushed to the backend.
func (r *AdminRepository) ListUsers(ctx context.Context, filters models.FilterState) ([]models.User, error) {
	query := map[string]string{}
	for _, name := range []string{models.FilterRole, models.FilterName} {
		if v := filters.Get(name); v != "" {
			query[name] = v
		}
	}
	var users []models.User
	err := r.client.Do(ctx, backend.Request{
		Method: http.MethodGet,
		Route:  "/api/admin/users",
		Path:   "/api/admin/users",
		Token:  r.token,
		Query:  query,
		Result: &users,
	})
	return users, err
}

// ChangeUserRole assigns role to the user.
func (r *AdminRepository) ChangeUserRole(ctx context.Context, userID int64, role models.UserRole) error {
	return r.client.Do(ctx, backend.Request{
		Method: http.MethodPut,
		Route:  "/api/admin/users/{id}/role",
		Path:   fmt.Sprintf("/api/admin/users/%d/role", userID),
		Token:  r.token,
		Body:   map[string]string{"role": string(role)},
	})
}

// DeleteUser removes the user account.
func (r *AdminRepository) DeleteUser(ctx context.Context, userID int64) error {
	return r.client.Do(ctx, backend.Request{
		Method: http.MethodDelete,
		Route:  "/api/admin/users/{id}",
		Path:   fmt.Sprintf("/api/admin/users/%d", userID),
		Token:  r.token,
	})
}

// ListPendingCourses returns the approval queue.
func (r *AdminRepository) ListPendingCourses(ctx context.Context) ([]models.Course, error) {
	return r.listCourses(ctx, "/api/admin/courses/pending")
}

// ListAllCourses returns every course.
func (r *AdminRepository) ListAllCourses(ctx context.Context) ([]models.Course, error) {
	return r.listCourses(ctx, "/api/admin/courses")
}

func (r *AdminRepository) listCourses(ctx context.Context, path string) ([]models.Course, error) {
	var courses []models.Course
	err := r.client.Do(ctx, backend.Request{
		Method: http.MethodGet,
		Route:  path,
		Path:   path,
		Token:  r.token,
		Result: &courses,
	})
	return courses, err
}

// ChangeCourseStatus records the admin decision on a course.
func (r *AdminRepository) ChangeCourseStatus(ctx context.Context, courseID int64, status models.CourseStatus) error {
	return r.client.Do(ctx, backend.Request{
		Method: http.MethodPut,
		Route:  "/api/admin/courses/{id}/status",
		Path:   fmt.Sprintf("/api/admin/courses/%d/status", courseID),
		Token:  r.token,
		Body:   map[string]string{"status": string(status)},
	})
}

// ForceEnroll enrolls a student regardless of capacity.
func (r *AdminRepository) ForceEnroll(ctx context.Context, courseID, studentID int64) error {
	return r.client.Do(ctx, backend.Request{
		Method: http.MethodPost,
		Route:  "/api/admin/courses/{id}/enroll",
		Path:   fmt.Sprintf("/api/admin/courses/%d/enroll", courseID),
		Token:  r.token,
		Body:   map[string]int64{"studentId": studentID},
	})
}

// ForceUnenroll removes an existing enrollment.
func (r *AdminRepository) ForceUnenroll(ctx context.Context, courseID, studentID int64) error {
	return r.client.Do(ctx, backend.Request{
		Method: http.MethodDelete,
		Route:  "/api/admin/courses/{id}/unenroll/{studentId}",
		Path:   fmt.Sprintf("/api/admin/courses/%d/unenroll/%d", courseID, studentID),
		Token:  r.token,
	})
}

// CreateNotice publishes a global notice.
func (r *AdminRepository) CreateNotice(ctx context.Context, req dto.NoticeRequest) error {
	return r.client.Do(ctx, backend.Request{
		Method: http.MethodPost,
		Route:  "/api/admin/notices",
		Path:   "/api/admin/notices",
		Token:  r.token,
		Body:   req,
	})
}

// CreateSurvey publishes a survey addressed to every student.
func (r *AdminRepository) CreateSurvey(ctx context.Context, req dto.SurveyRequest) error {
	return r.client.Do(ctx, backend.Request{
		Method: http.MethodPost,
		Route:  "/api/admin/surveys",
		Path:   "/api/admin/surveys",
		Token:  r.token,
		Body:   req,
	})
}
