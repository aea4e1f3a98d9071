package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/afterschool-console/api/swagger"
	"github.com/noah-isme/afterschool-console/internal/handler"
	"github.com/noah-isme/afterschool-console/internal/repository"
	"github.com/noah-isme/afterschool-console/internal/service"
	"github.com/noah-isme/afterschool-console/pkg/backend"
	"github.com/noah-isme/afterschool-console/pkg/cache"
	"github.com/noah-isme/afterschool-console/pkg/config"
	"github.com/noah-isme/afterschool-console/pkg/database"
	"github.com/noah-isme/afterschool-console/pkg/logger"
)

// @title Afterschool Console API
// @version 1.0.0
// @description Staff console for the afterschool course platform
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Fatal("failed to connect redis", zap.Error(err))
	}
	defer rdb.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	validate := validator.New()
	client := backend.New(cfg.Backend, logr.Named("backend"), metrics)

	deps := service.WorkspaceDeps{
		NewAdminAPI: func(token string) service.AdminAPI {
			return repository.NewAdminRepository(client, token)
		},
		NewTeacherAPI: func(token string) service.TeacherAPI {
			return repository.NewTeacherCourseRepository(client, token)
		},
		Metrics:   metrics,
		Validator: validate,
		Logger:    logr.Named("workspace"),
	}

	if cfg.Audit.Enabled {
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect audit database", zap.Error(err))
		}
		defer db.Close() //nolint:errcheck
		audit := repository.NewAuditRepository(db)
		if err := audit.EnsureSchema(ctx); err != nil {
			logr.Fatal("failed to prepare audit schema", zap.Error(err))
		}
		journal := service.NewAuditJournal(audit, cfg.Audit.QueueSize, logr.Named("audit"))
		journal.Start(context.Background())
		defer journal.Stop()
		deps.Audit = journal
	}

	sessions := service.NewSessionService(
		repository.NewSessionRepository(rdb, cfg.Session.KeyPrefix, logr.Named("sessions")),
		cfg.Session,
		validate,
		logr.Named("sessions"),
	)
	workspaces := service.NewWorkspaceManager(deps, cfg.Workspace.IdleTTL)
	go workspaces.Run(ctx, time.Minute)

	router := handler.NewRouter(handler.RouterDeps{
		Config:     cfg,
		Logger:     logr,
		Sessions:   sessions,
		Workspaces: workspaces,
		Exports:    service.NewExportService(logr.Named("export")),
		Metrics:    metrics,
		Ready: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
	})
	if cfg.Env != config.EnvProduction {
		router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", server.Addr), zap.String("env", cfg.Env), zap.String("backend", cfg.Backend.BaseURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Error("server forced to shutdown", zap.Error(err))
	}
}
