package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-console/internal/dto"
	"github.com/noah-isme/afterschool-console/internal/models"
	appErrors "github.com/noah-isme/afterschool-console/pkg/errors"
	"github.com/noah-isme/afterschool-console/pkg/middleware/requestid"
)

type adminTransitionAPI interface {
	ChangeUserRole(ctx context.Context, userID int64, role models.UserRole) error
	DeleteUser(ctx context.Context, userID int64) error
	ChangeCourseStatus(ctx context.Context, courseID int64, status models.CourseStatus) error
	ForceEnroll(ctx context.Context, courseID, studentID int64) error
	ForceUnenroll(ctx context.Context, courseID, studentID int64) error
	CreateNotice(ctx context.Context, req dto.NoticeRequest) error
	CreateSurvey(ctx context.Context, req dto.SurveyRequest) error
}

type teacherTransitionAPI interface {
	CreateCourse(ctx context.Context, req dto.CourseRequest) error
	UpdateCourse(ctx context.Context, courseID int64, req dto.CourseRequest) error
}

type viewInvalidator interface {
	Invalidate(ctx context.Context, names ...models.ViewName) InvalidationReport
}

type auditRecorder interface {
	Record(ctx context.Context, entry *models.AuditEntry) error
}

// TransitionObserver counts transition outcomes.
type TransitionObserver interface {
	ObserveTransition(kind models.TransitionKind, outcome string)
}

// CourseStatusLookup reports the status a committed snapshot shows for a course.
type CourseStatusLookup func(courseID int64) (models.CourseStatus, bool)

// TransitionOutcome is the completion signal of a confirmed mutation.
type TransitionOutcome struct {
	Kind          models.TransitionKind
	TargetID      string
	Refreshed     []models.ViewName
	RefreshErrors map[models.ViewName]error
}

// TransitionService applies one mutation at a time against the backend and,
// only after the backend confirms it, re-synchronizes every affected view.
type TransitionService struct {
	session   *models.Session
	admin     adminTransitionAPI
	teacher   teacherTransitionAPI
	views     viewInvalidator
	statuses  CourseStatusLookup
	audit     auditRecorder
	observer  TransitionObserver
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// TransitionDeps groups the collaborators of a TransitionService.
type TransitionDeps struct {
	Admin     adminTransitionAPI
	Teacher   teacherTransitionAPI
	Views     viewInvalidator
	Statuses  CourseStatusLookup
	Audit     auditRecorder
	Observer  TransitionObserver
	Validator *validator.Validate
	Logger    *zap.Logger
}

// NewTransitionService constructs a TransitionService bound to session.
func NewTransitionService(session *models.Session, deps TransitionDeps) *TransitionService {
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &TransitionService{
		session:   session,
		admin:     deps.Admin,
		teacher:   deps.Teacher,
		views:     deps.Views,
		statuses:  deps.Statuses,
		audit:     deps.Audit,
		observer:  deps.Observer,
		validator: deps.Validator,
		logger:    deps.Logger,
		now:       time.Now,
	}
}

type transition struct {
	kind     models.TransitionKind
	target   string
	payload  interface{}
	fallback string
	call     func(ctx context.Context) error
	affects  []models.ViewName
}

// ChangeUserRole assigns role to a user and refreshes the roster. Sending the
// role a user already has is not an error.
func (s *TransitionService) ChangeUserRole(ctx context.Context, userID int64, req dto.ChangeRoleRequest) (*TransitionOutcome, error) {
	if err := s.requireRole(models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid role payload")
	}
	if userID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid user id")
	}
	role, ok := models.NormalizeRole(req.Role)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role "+req.Role)
	}
	return s.execute(ctx, transition{
		kind:     models.TransitionChangeRole,
		target:   strconv.FormatInt(userID, 10),
		payload:  map[string]string{"role": string(role)},
		fallback: "failed to change user role",
		call:     func(ctx context.Context) error { return s.admin.ChangeUserRole(ctx, userID, role) },
		affects:  []models.ViewName{models.ViewUserRoster},
	})
}

// DeleteUser removes a user account and refreshes the roster.
func (s *TransitionService) DeleteUser(ctx context.Context, userID int64) (*TransitionOutcome, error) {
	if err := s.requireRole(models.RoleAdmin); err != nil {
		return nil, err
	}
	if userID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid user id")
	}
	return s.execute(ctx, transition{
		kind:     models.TransitionDeleteUser,
		target:   strconv.FormatInt(userID, 10),
		fallback: "failed to delete user",
		call:     func(ctx context.Context) error { return s.admin.DeleteUser(ctx, userID) },
		affects:  []models.ViewName{models.ViewUserRoster},
	})
}

// ChangeCourseStatus approves or rejects a course and refreshes both the
// pending queue and the consolidated list.
func (s *TransitionService) ChangeCourseStatus(ctx context.Context, courseID int64, req dto.ChangeCourseStatusRequest) (*TransitionOutcome, error) {
	if err := s.requireRole(models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	if courseID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid course id")
	}
	status, ok := models.NormalizeStatus(req.Status)
	if !ok || (status != models.CourseStatusApproved && status != models.CourseStatusRejected) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be APPROVED or REJECTED")
	}

	target := strconv.FormatInt(courseID, 10)
	if s.statuses != nil {
		if current, found := s.statuses(courseID); found && current == status {
			message := "course is already " + string(status)
			s.record(ctx, models.TransitionCourseStatus, target, map[string]string{"status": string(status)}, models.OutcomeRejected, message)
			return nil, appErrors.Clone(appErrors.ErrTransitionFailed, message)
		}
	}

	return s.execute(ctx, transition{
		kind:     models.TransitionCourseStatus,
		target:   target,
		payload:  map[string]string{"status": string(status)},
		fallback: "failed to change course status",
		call:     func(ctx context.Context) error { return s.admin.ChangeCourseStatus(ctx, courseID, status) },
		affects:  []models.ViewName{models.ViewPendingCourses, models.ViewAllCourses},
	})
}

// ForceEnroll enrolls a student without any client-side capacity check.
func (s *TransitionService) ForceEnroll(ctx context.Context, courseID int64, req dto.EnrollRequest) (*TransitionOutcome, error) {
	if err := s.requireRole(models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	if courseID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid course id")
	}
	return s.execute(ctx, transition{
		kind:     models.TransitionForceEnroll,
		target:   strconv.FormatInt(courseID, 10),
		payload:  models.Enrollment{CourseID: courseID, StudentID: req.StudentID},
		fallback: "failed to enroll student",
		call:     func(ctx context.Context) error { return s.admin.ForceEnroll(ctx, courseID, req.StudentID) },
		affects:  []models.ViewName{models.ViewAllCourses},
	})
}

// ForceUnenroll removes an enrollment. A missing relation is reported by the
// backend and surfaces as a failed transition.
func (s *TransitionService) ForceUnenroll(ctx context.Context, courseID, studentID int64) (*TransitionOutcome, error) {
	if err := s.requireRole(models.RoleAdmin); err != nil {
		return nil, err
	}
	if courseID <= 0 || studentID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid course or student id")
	}
	return s.execute(ctx, transition{
		kind:     models.TransitionForceUnenrol,
		target:   strconv.FormatInt(courseID, 10),
		payload:  models.Enrollment{CourseID: courseID, StudentID: studentID},
		fallback: "failed to unenroll student",
		call:     func(ctx context.Context) error { return s.admin.ForceUnenroll(ctx, courseID, studentID) },
		affects:  []models.ViewName{models.ViewAllCourses},
	})
}

// CreateNotice publishes a global notice. No list depends on notices.
func (s *TransitionService) CreateNotice(ctx context.Context, req dto.NoticeRequest) (*TransitionOutcome, error) {
	if err := s.requireRole(models.RoleAdmin); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notice payload")
	}
	return s.execute(ctx, transition{
		kind:     models.TransitionCreateNotice,
		payload:  map[string]string{"title": req.Title},
		fallback: "failed to publish notice",
		call:     func(ctx context.Context) error { return s.admin.CreateNotice(ctx, req) },
	})
}

// CreateSurvey publishes a global survey. Like notices it refreshes nothing.
func (s *TransitionService) CreateSurvey(ctx context.Context, req dto.SurveyRequest) (*TransitionOutcome, error) {
	if err := s.requireRole(models.RoleAdmin); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid survey payload")
	}
	if req.EndDate < req.StartDate {
		return nil, appErrors.Clone(appErrors.ErrValidation, "survey end date precedes its start date")
	}
	for _, q := range req.Questions {
		if q.QuestionType == dto.QuestionMultipleChoice && q.Options == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "multiple choice questions need options")
		}
	}
	return s.execute(ctx, transition{
		kind:     models.TransitionCreateSurvey,
		payload:  map[string]interface{}{"title": req.Title, "questions": len(req.Questions)},
		fallback: "failed to publish survey",
		call:     func(ctx context.Context) error { return s.admin.CreateSurvey(ctx, req) },
	})
}

// CreateCourse submits a teacher's course and refreshes their course list.
func (s *TransitionService) CreateCourse(ctx context.Context, req dto.CourseRequest) (*TransitionOutcome, error) {
	if err := s.requireRole(models.RoleTeacher); err != nil {
		return nil, err
	}
	if err := s.validateCourse(&req); err != nil {
		return nil, err
	}
	return s.execute(ctx, transition{
		kind:     models.TransitionCreateCourse,
		payload:  req,
		fallback: "failed to create course",
		call:     func(ctx context.Context) error { return s.teacher.CreateCourse(ctx, req) },
		affects:  []models.ViewName{models.ViewMyCourses},
	})
}

// UpdateCourse edits a teacher's course and refreshes their course list.
func (s *TransitionService) UpdateCourse(ctx context.Context, courseID int64, req dto.CourseRequest) (*TransitionOutcome, error) {
	if err := s.requireRole(models.RoleTeacher); err != nil {
		return nil, err
	}
	if courseID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid course id")
	}
	if err := s.validateCourse(&req); err != nil {
		return nil, err
	}
	return s.execute(ctx, transition{
		kind:     models.TransitionUpdateCourse,
		target:   strconv.FormatInt(courseID, 10),
		payload:  req,
		fallback: "failed to update course",
		call:     func(ctx context.Context) error { return s.teacher.UpdateCourse(ctx, courseID, req) },
		affects:  []models.ViewName{models.ViewMyCourses},
	})
}

func (s *TransitionService) validateCourse(req *dto.CourseRequest) error {
	req.Normalize()
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	endDate, err := time.ParseInLocation("2006-01-02", req.EndDate, time.Local)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course end date")
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if !endDate.After(today) {
		return appErrors.Clone(appErrors.ErrValidation, "course end date must be in the future")
	}
	return nil
}

func (s *TransitionService) requireRole(role models.UserRole) error {
	if s.session == nil {
		return appErrors.ErrUnauthorized
	}
	if s.session.Role != role {
		return appErrors.Clone(appErrors.ErrForbidden, "operation requires role "+string(role))
	}
	return nil
}

func (s *TransitionService) execute(ctx context.Context, t transition) (*TransitionOutcome, error) {
	if err := t.call(ctx); err != nil {
		failure := transitionFailed(err, t.fallback)
		s.record(ctx, t.kind, t.target, t.payload, models.OutcomeFailed, failure.Message)
		s.logger.Info("transition rejected", zap.String("kind", string(t.kind)), zap.String("target", t.target), zap.Error(err))
		return nil, failure
	}
	s.record(ctx, t.kind, t.target, t.payload, models.OutcomeSucceeded, "")

	outcome := &TransitionOutcome{Kind: t.kind, TargetID: t.target, Refreshed: []models.ViewName{}}
	if len(t.affects) > 0 && s.views != nil {
		report := s.views.Invalidate(ctx, t.affects...)
		if report.Refreshed != nil {
			outcome.Refreshed = report.Refreshed
		}
		outcome.RefreshErrors = report.Failed
	}
	return outcome, nil
}

// record journals the transition and counts it. Journal failures never fail
// the transition.
func (s *TransitionService) record(ctx context.Context, kind models.TransitionKind, target string, payload interface{}, outcome, message string) {
	if s.observer != nil {
		s.observer.ObserveTransition(kind, outcome)
	}
	if s.audit == nil {
		return
	}
	entry := &models.AuditEntry{
		Kind:      kind,
		TargetID:  target,
		Outcome:   outcome,
		Message:   message,
		RequestID: requestid.FromContext(ctx),
	}
	if s.session != nil {
		entry.SessionID = s.session.ID
		entry.ActorRole = s.session.Role
		entry.ActorName = s.session.Name
	}
	if payload != nil {
		if raw, err := json.Marshal(payload); err == nil {
			entry.Payload = types.NullJSONText{JSONText: raw, Valid: true}
		}
	}
	if err := s.audit.Record(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Warn("failed to journal transition", zap.String("kind", string(kind)), zap.Error(err))
	}
}
