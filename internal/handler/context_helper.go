package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/afterschool-console/internal/dto"
	"github.com/noah-isme/afterschool-console/internal/middleware"
	"github.com/noah-isme/afterschool-console/internal/models"
	"github.com/noah-isme/afterschool-console/internal/service"
	appErrors "github.com/noah-isme/afterschool-console/pkg/errors"
	"github.com/noah-isme/afterschool-console/pkg/response"
)

// consoleWorkspace is the per-session surface the handlers drive.
type consoleWorkspace interface {
	Synchronize(ctx context.Context, view models.ViewName, values map[string]string) (*models.ViewPage, error)
	Page(view models.ViewName) (*models.ViewPage, error)
	Teardown(view models.ViewName) error

	ChangeUserRole(ctx context.Context, userID int64, req dto.ChangeRoleRequest) (*service.TransitionOutcome, error)
	DeleteUser(ctx context.Context, userID int64) (*service.TransitionOutcome, error)
	ChangeCourseStatus(ctx context.Context, courseID int64, req dto.ChangeCourseStatusRequest) (*service.TransitionOutcome, error)
	ForceEnroll(ctx context.Context, courseID int64, req dto.EnrollRequest) (*service.TransitionOutcome, error)
	ForceUnenroll(ctx context.Context, courseID, studentID int64) (*service.TransitionOutcome, error)
	CreateNotice(ctx context.Context, req dto.NoticeRequest) (*service.TransitionOutcome, error)
	CreateSurvey(ctx context.Context, req dto.SurveyRequest) (*service.TransitionOutcome, error)
	CreateCourse(ctx context.Context, req dto.CourseRequest) (*service.TransitionOutcome, error)
	UpdateCourse(ctx context.Context, courseID int64, req dto.CourseRequest) (*service.TransitionOutcome, error)
}

type workspaceResolver func(session *models.Session) consoleWorkspace

func workspaceFromContext(c *gin.Context, resolve workspaceResolver) (consoleWorkspace, bool) {
	session, ok := middleware.MustSession(c)
	if !ok {
		return nil, false
	}
	return resolve(session), true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid "+name))
		return 0, false
	}
	return id, true
}

func transitionResponse(outcome *service.TransitionOutcome) dto.TransitionResponse {
	res := dto.TransitionResponse{
		Kind:           string(outcome.Kind),
		TargetID:       outcome.TargetID,
		RefreshedViews: make([]string, 0, len(outcome.Refreshed)),
	}
	for _, view := range outcome.Refreshed {
		res.RefreshedViews = append(res.RefreshedViews, string(view))
	}
	if len(outcome.RefreshErrors) > 0 {
		res.RefreshErrors = make(map[string]string, len(outcome.RefreshErrors))
		for view, err := range outcome.RefreshErrors {
			res.RefreshErrors[string(view)] = appErrors.FromError(err).Message
		}
	}
	return res
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message))
		return false
	}
	return true
}
