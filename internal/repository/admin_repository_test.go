package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/afterschool-console/internal/dto"
	"github.com/noah-isme/afterschool-console/internal/models"
	"github.com/noah-isme/afterschool-console/pkg/backend"
	"github.com/noah-isme/afterschool-console/pkg/config"
)

type recordedCall struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   map[string]interface{}
}

type callLog struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (l *callLog) all() []recordedCall {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]recordedCall{}, l.calls...)
}

func newRecordingBackend(t *testing.T, respond func(w http.ResponseWriter, r *http.Request)) (*backend.Client, *callLog) {
	log := &callLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := recordedCall{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Auth: r.Header.Get("Authorization")}
		if r.ContentLength > 0 {
			_ = json.NewDecoder(r.Body).Decode(&call.Body)
		}
		log.mu.Lock()
		log.calls = append(log.calls, call)
		log.mu.Unlock()
		if respond != nil {
			respond(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return backend.New(config.BackendConfig{BaseURL: srv.URL, Timeout: time.Second}, nil, nil), log
}

func TestAdminRepositoryListUsersPushesRoleAndName(t *testing.T) {
	client, calls := newRecordingBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"userId":3,"name":"Lee","email":"lee@x","role":"교사"}]`))
	})
	repo := NewAdminRepository(client, "tok")

	users, err := repo.ListUsers(context.Background(), models.FilterState{models.FilterRole: "TEACHER", models.FilterKeyword: "ignored"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleTeacher, users[0].Role)

	got := calls.all()
	require.Len(t, got, 1)
	assert.Equal(t, "/api/admin/users", got[0].Path)
	assert.Equal(t, "role=TEACHER", got[0].Query)
	assert.Equal(t, "Bearer tok", got[0].Auth)
}

func TestAdminRepositoryMutationsHitExpectedRoutes(t *testing.T) {
	client, calls := newRecordingBackend(t, nil)
	repo := NewAdminRepository(client, "tok")
	ctx := context.Background()

	require.NoError(t, repo.ChangeUserRole(ctx, 4, models.RoleStudent))
	require.NoError(t, repo.DeleteUser(ctx, 4))
	require.NoError(t, repo.ChangeCourseStatus(ctx, 9, models.CourseStatusApproved))
	require.NoError(t, repo.ForceEnroll(ctx, 9, 12))
	require.NoError(t, repo.ForceUnenroll(ctx, 9, 12))
	require.NoError(t, repo.CreateNotice(ctx, dto.NoticeRequest{Title: "휴강", Content: "내일 휴강"}))
	require.NoError(t, repo.CreateSurvey(ctx, dto.SurveyRequest{
		Title:     "만족도 조사",
		StartDate: "2025-03-10",
		EndDate:   "2025-03-20",
		Questions: []dto.SurveyQuestion{{QuestionText: "만족하십니까?", QuestionType: dto.QuestionText}},
	}))

	got := calls.all()
	require.Len(t, got, 7)
	assert.Equal(t, recordedCall{Method: http.MethodPut, Path: "/api/admin/users/4/role", Auth: "Bearer tok", Body: map[string]interface{}{"role": "STUDENT"}}, got[0])
	assert.Equal(t, http.MethodDelete, got[1].Method)
	assert.Equal(t, "/api/admin/users/4", got[1].Path)
	assert.Equal(t, "APPROVED", got[2].Body["status"])
	assert.Equal(t, "/api/admin/courses/9/enroll", got[3].Path)
	assert.Equal(t, float64(12), got[3].Body["studentId"])
	assert.Equal(t, "/api/admin/courses/9/unenroll/12", got[4].Path)
	assert.Equal(t, "휴강", got[5].Body["title"])
	assert.Equal(t, http.MethodPost, got[6].Method)
	assert.Equal(t, "/api/admin/surveys", got[6].Path)
	assert.Equal(t, "만족도 조사", got[6].Body["title"])
	require.Len(t, got[6].Body["questions"], 1)
}

func TestTeacherCourseRepositoryRoutes(t *testing.T) {
	client, calls := newRecordingBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`[{"courseId":1,"courseName":"Robotics","status":"pending","capacity":10}]`))
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	repo := NewTeacherCourseRepository(client, "tok")
	ctx := context.Background()

	courses, err := repo.ListMyCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, models.CourseStatusPending, courses[0].Status)

	req := dto.CourseRequest{CourseName: "Robotics", CourseDays: "월,수", CourseTime: "16:00-17:30", Location: "3-1", Capacity: 10, Quarter: 2, EndDate: "2030-06-30"}
	require.NoError(t, repo.CreateCourse(ctx, req))
	require.NoError(t, repo.UpdateCourse(ctx, 1, req))

	got := calls.all()
	require.Len(t, got, 3)
	assert.Equal(t, "/api/teachers/courses/my", got[0].Path)
	assert.Equal(t, http.MethodPost, got[1].Method)
	assert.Equal(t, "Robotics", got[1].Body["courseName"])
	assert.Equal(t, "/api/teachers/courses/1", got[2].Path)
	assert.Equal(t, float64(2), got[2].Body["quarter"])
}
