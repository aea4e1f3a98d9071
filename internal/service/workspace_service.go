package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-console/internal/models"
	appErrors "github.com/noah-isme/afterschool-console/pkg/errors"
)

// AdminAPI is the backend surface used by admin views and transitions.
type AdminAPI interface {
	adminTransitionAPI
	ListUsers(ctx context.Context, filters models.FilterState) ([]models.User, error)
	ListPendingCourses(ctx context.Context) ([]models.Course, error)
	ListAllCourses(ctx context.Context) ([]models.Course, error)
}

// TeacherAPI is the backend surface used by the teacher view and transitions.
type TeacherAPI interface {
	teacherTransitionAPI
	ListMyCourses(ctx context.Context) ([]models.Course, error)
}

// WorkspaceDeps builds the per-session collaborators of a Workspace.
type WorkspaceDeps struct {
	NewAdminAPI   func(token string) AdminAPI
	NewTeacherAPI func(token string) TeacherAPI
	Audit         auditRecorder
	Metrics       *MetricsService
	Validator     *validator.Validate
	Logger        *zap.Logger
}

// Workspace holds the synchronized views of one console session: a
// coordinator per entity type, the view registry and the transition
// executor bound to the session credential.
type Workspace struct {
	*TransitionService

	session  *models.Session
	users    *SyncCoordinator[models.User]
	courses  *SyncCoordinator[models.Course]
	registry *ViewRegistry
	lastUsed atomic.Int64
}

// NewWorkspace wires a workspace for session.
func NewWorkspace(session *models.Session, deps WorkspaceDeps) *Workspace {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("session_id", session.ID))

	var syncObserver SyncObserver
	var invalidationObserver InvalidationObserver
	var transitionObserver TransitionObserver
	if deps.Metrics != nil {
		syncObserver, invalidationObserver, transitionObserver = deps.Metrics, deps.Metrics, deps.Metrics
	}

	ws := &Workspace{
		session:  session,
		users:    NewSyncCoordinator[models.User](syncObserver, logger),
		courses:  NewSyncCoordinator[models.Course](syncObserver, logger),
		registry: NewViewRegistry(invalidationObserver, logger),
	}

	transitionDeps := TransitionDeps{
		Views:     ws.registry,
		Statuses:  ws.courseStatus,
		Observer:  transitionObserver,
		Validator: deps.Validator,
		Logger:    logger,
	}
	if deps.Audit != nil {
		transitionDeps.Audit = deps.Audit
	}

	switch session.Role {
	case models.RoleAdmin:
		if deps.NewAdminAPI != nil {
			admin := deps.NewAdminAPI(session.Token)
			transitionDeps.Admin = admin
			ws.users.Bind(models.ViewUserRoster, func(ctx context.Context, d models.QueryDescriptor) ([]models.User, error) {
				return admin.ListUsers(ctx, d.Filters)
			})
			ws.courses.Bind(models.ViewPendingCourses, func(ctx context.Context, _ models.QueryDescriptor) ([]models.Course, error) {
				return admin.ListPendingCourses(ctx)
			})
			ws.courses.Bind(models.ViewAllCourses, func(ctx context.Context, _ models.QueryDescriptor) ([]models.Course, error) {
				return admin.ListAllCourses(ctx)
			})
		}
	case models.RoleTeacher:
		if deps.NewTeacherAPI != nil {
			teacher := deps.NewTeacherAPI(session.Token)
			transitionDeps.Teacher = teacher
			ws.courses.Bind(models.ViewMyCourses, func(ctx context.Context, _ models.QueryDescriptor) ([]models.Course, error) {
				return teacher.ListMyCourses(ctx)
			})
		}
	}

	ws.TransitionService = NewTransitionService(session, transitionDeps)
	ws.touch(time.Now())
	return ws
}

// Session returns the session the workspace belongs to.
func (w *Workspace) Session() *models.Session {
	return w.session
}

// Synchronize composes the filter values into a descriptor, fetches the view
// and renders whatever snapshot is committed afterwards. A superseded
// response is not an error: the fresher snapshot is rendered and marked stale.
func (w *Workspace) Synchronize(ctx context.Context, view models.ViewName, values map[string]string) (*models.ViewPage, error) {
	def, err := w.authorize(view)
	if err != nil {
		return nil, err
	}
	d, err := ComposeQuery(view, values)
	if err != nil {
		return nil, err
	}
	w.mount(def)

	var page *models.ViewPage
	if def.Name == models.ViewUserRoster {
		snap, syncErr := w.users.Synchronize(ctx, view, d)
		if err = syncErr; err == nil || errors.Is(err, appErrors.ErrStaleResponse) {
			page = renderUserPage(def, snap)
		}
	} else {
		snap, syncErr := w.courses.Synchronize(ctx, view, d)
		if err = syncErr; err == nil || errors.Is(err, appErrors.ErrStaleResponse) {
			page = renderCoursePage(def, snap)
		}
	}

	switch {
	case err == nil:
		return page, nil
	case errors.Is(err, appErrors.ErrStaleResponse):
		page.Stale = true
		return page, nil
	default:
		return nil, err
	}
}

// Page renders the committed snapshot of a view without fetching.
func (w *Workspace) Page(view models.ViewName) (*models.ViewPage, error) {
	def, err := w.authorize(view)
	if err != nil {
		return nil, err
	}
	if def.Name == models.ViewUserRoster {
		snap, _ := w.users.Snapshot(view)
		return renderUserPage(def, snap), nil
	}
	snap, _ := w.courses.Snapshot(view)
	return renderCoursePage(def, snap), nil
}

// Teardown discards the view's snapshot; in-flight fetches will not commit.
func (w *Workspace) Teardown(view models.ViewName) error {
	def, err := w.authorize(view)
	if err != nil {
		return err
	}
	if def.Name == models.ViewUserRoster {
		w.users.Teardown(view)
	} else {
		w.courses.Teardown(view)
	}
	return nil
}

func (w *Workspace) authorize(view models.ViewName) (ViewDefinition, error) {
	w.touch(time.Now())
	def, ok := LookupView(view)
	if !ok {
		return ViewDefinition{}, appErrors.Clone(appErrors.ErrNotFound, "unknown view "+string(view))
	}
	if def.Role != w.session.Role {
		return ViewDefinition{}, appErrors.Clone(appErrors.ErrForbidden, "view "+string(view)+" requires role "+string(def.Role))
	}
	return def, nil
}

// mount registers the view's refresh function; entering a view again simply
// replaces the registration.
func (w *Workspace) mount(def ViewDefinition) {
	view := def.Name
	if view == models.ViewUserRoster {
		w.registry.Register(view, func(ctx context.Context) (bool, error) { return w.users.Refresh(ctx, view) })
		return
	}
	w.registry.Register(view, func(ctx context.Context) (bool, error) { return w.courses.Refresh(ctx, view) })
}

// courseStatus reports the status of a course in the most recently committed
// admin course snapshot that contains it.
func (w *Workspace) courseStatus(courseID int64) (models.CourseStatus, bool) {
	var (
		found     bool
		status    models.CourseStatus
		committed time.Time
	)
	for _, view := range []models.ViewName{models.ViewPendingCourses, models.ViewAllCourses} {
		snap, ok := w.courses.Snapshot(view)
		if !ok || (found && !snap.CommittedAt.After(committed)) {
			continue
		}
		for _, c := range snap.Items {
			if c.ID == courseID && c.Status != "" {
				found, status, committed = true, c.Status, snap.CommittedAt
				break
			}
		}
	}
	return status, found
}

func (w *Workspace) touch(now time.Time) {
	w.lastUsed.Store(now.UnixNano())
}

func (w *Workspace) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, w.lastUsed.Load()))
}

func renderUserPage(def ViewDefinition, snap *Snapshot[models.User]) *models.ViewPage {
	page := &models.ViewPage{View: def.Name, Filters: models.FilterState{}, Users: []models.UserRow{}}
	if snap == nil {
		return page
	}
	page.Mounted = true
	page.Seq = snap.Descriptor.Seq
	page.Filters = snap.Descriptor.Filters
	page.Total = len(snap.Items)
	page.Users = RenderUsers(snap.Items)
	return page
}

func renderCoursePage(def ViewDefinition, snap *Snapshot[models.Course]) *models.ViewPage {
	page := &models.ViewPage{View: def.Name, Filters: models.FilterState{}, Courses: []models.CourseRow{}}
	if snap == nil {
		return page
	}
	page.Mounted = true
	page.Seq = snap.Descriptor.Seq
	page.Filters = snap.Descriptor.Filters
	page.Total = len(snap.Items)
	page.Courses = RenderCourses(def.Mode, snap.Items, snap.Descriptor.Filters.Only(def.Local...))
	return page
}

// WorkspaceManager keeps one Workspace per open session and evicts those
// left idle.
type WorkspaceManager struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
	deps       WorkspaceDeps
	idleTTL    time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewWorkspaceManager constructs a manager.
func NewWorkspaceManager(deps WorkspaceDeps, idleTTL time.Duration) *WorkspaceManager {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	return &WorkspaceManager{
		workspaces: make(map[string]*Workspace),
		deps:       deps,
		idleTTL:    idleTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// Get returns the workspace of session, creating it on first use.
func (m *WorkspaceManager) Get(session *models.Session) *Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws, ok := m.workspaces[session.ID]
	if !ok {
		ws = NewWorkspace(session, m.deps)
		m.workspaces[session.ID] = ws
		m.deps.Metrics.SetActiveWorkspaces(len(m.workspaces))
	}
	ws.touch(m.now())
	return ws
}

// Close drops the workspace of a session.
func (m *WorkspaceManager) Close(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.workspaces, sessionID)
	m.deps.Metrics.SetActiveWorkspaces(len(m.workspaces))
}

// Len returns the number of live workspaces.
func (m *WorkspaceManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.workspaces)
}

// Sweep evicts workspaces idle for longer than the idle TTL.
func (m *WorkspaceManager) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	evicted := 0
	for id, ws := range m.workspaces {
		if ws.idleSince(now) > m.idleTTL {
			delete(m.workspaces, id)
			evicted++
		}
	}
	if evicted > 0 {
		m.deps.Metrics.SetActiveWorkspaces(len(m.workspaces))
		m.logger.Info("evicted idle workspaces", zap.Int("count", evicted))
	}
	return evicted
}

// Run sweeps periodically until ctx is cancelled.
func (m *WorkspaceManager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}
