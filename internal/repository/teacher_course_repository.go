package repository

import (
	"context"
	"fmt"
	"net/http"

	"github.com/noah-isme/afterschool-console/internal/dto"
	"github.com/noah-isme/afterschool-console/internal/models"
	"github.com/noah-isme/afterschool-console/pkg/backend"
)

// TeacherCourseRepository calls the teacher course endpoints of the backend.
type TeacherCourseRepository struct {
	client backendDoer
	token  string
}

// NewTeacherCourseRepository binds the teacher API to a bearer token.
func NewTeacherCourseRepository(client backendDoer, token string) *TeacherCourseRepository {
	return &TeacherCourseRepository{client: client, token: token}
}

// ListMyCourses returns the courses owned by the session's teacher.
func (r *TeacherCourseRepository) ListMyCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := r.client.Do(ctx, backend.Request{
		Method: http.MethodGet,
		Route:  "/api/teachers/courses/my",
		Path:   "/api/teachers/courses/my",
		Token:  r.token,
		Result: &courses,
	})
	return courses, err
}

// CreateCourse submits a new course for approval.
func (r *TeacherCourseRepository) CreateCourse(ctx context.Context, req dto.CourseRequest) error {
	return r.client.Do(ctx, backend.Request{
		Method: http.MethodPost,
		Route:  "/api/teachers/courses",
		Path:   "/api/teachers/courses",
		Token:  r.token,
		Body:   req,
	})
}

// UpdateCourse edits a course the teacher owns.
func (r *TeacherCourseRepository) UpdateCourse(ctx context.Context, courseID int64, req dto.CourseRequest) error {
	return r.client.Do(ctx, backend.Request{
		Method: http.MethodPut,
		Route:  "/api/teachers/courses/{id}",
		Path:   fmt.Sprintf("/api/teachers/courses/%d", courseID),
		Token:  r.token,
		Body:   req,
	})
}
