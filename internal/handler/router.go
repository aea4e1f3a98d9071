package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-console/internal/middleware"
	"github.com/noah-isme/afterschool-console/internal/models"
	"github.com/noah-isme/afterschool-console/internal/service"
	"github.com/noah-isme/afterschool-console/pkg/config"
	"github.com/noah-isme/afterschool-console/pkg/logger"
	corsmiddleware "github.com/noah-isme/afterschool-console/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/afterschool-console/pkg/middleware/requestid"
)

// RouterDeps groups what the console HTTP surface is built from.
type RouterDeps struct {
	Config     *config.Config
	Logger     *zap.Logger
	Sessions   *service.SessionService
	Workspaces *service.WorkspaceManager
	Exports    *service.ExportService
	Metrics    *service.MetricsService
	Ready      func(ctx context.Context) error
}

// NewRouter builds the gin engine serving the console.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	logr := deps.Logger
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(corsmiddleware.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		SessionHeader:  cfg.Session.Header,
	}))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	metricsHandler := NewMetricsHandler(deps.Metrics, deps.Ready)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, metricsHandler.Prometheus)
	}

	resolve := func(session *models.Session) consoleWorkspace {
		return deps.Workspaces.Get(session)
	}
	sessionHandler := NewSessionHandler(deps.Sessions, deps.Workspaces, cfg.Session.Header)
	viewHandler := NewViewHandler(resolve, deps.Exports)
	adminHandler := NewAdminHandler(resolve)
	teacherHandler := NewTeacherHandler(resolve)

	console := r.Group("/console")
	console.Use(middleware.WithResponseMeta())
	console.POST("/sessions", sessionHandler.Open)

	authed := console.Group("")
	authed.Use(middleware.Session(deps.Sessions, cfg.Session.Header))
	authed.GET("/sessions/current", sessionHandler.Current)
	authed.DELETE("/sessions/current", sessionHandler.Close)

	views := authed.Group("/views")
	views.GET("", viewHandler.List)
	views.GET("/:view", viewHandler.Synchronize)
	views.GET("/:view/snapshot", viewHandler.Snapshot)
	views.GET("/:view/export", viewHandler.Export)
	views.DELETE("/:view", viewHandler.Teardown)

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	admin.PUT("/users/:id/role", adminHandler.ChangeRole)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.PUT("/courses/:id/status", adminHandler.ChangeCourseStatus)
	admin.POST("/courses/:id/enrollments", adminHandler.ForceEnroll)
	admin.DELETE("/courses/:id/enrollments/:studentId", adminHandler.ForceUnenroll)
	admin.POST("/notices", adminHandler.CreateNotice)
	admin.POST("/surveys", adminHandler.CreateSurvey)

	teacher := authed.Group("/teacher")
	teacher.Use(middleware.RequireRoles(models.RoleTeacher))
	teacher.POST("/courses", teacherHandler.CreateCourse)
	teacher.PUT("/courses/:id", teacherHandler.UpdateCourse)

	return r
}
