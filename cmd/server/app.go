package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/crm-api/internal/config"
	"github.com/phrazzld/crm-api/internal/platform/logger"
	"github.com/phrazzld/crm-api/internal/platform/mongodb"
	"github.com/phrazzld/crm-api/internal/platform/rediscache"
	"github.com/phrazzld/crm-api/internal/reminder"
	"github.com/phrazzld/crm-api/internal/service"
	"github.com/phrazzld/crm-api/internal/service/auth"
)

const shutdownTimeout = 10 * time.Second

// application holds the wired-together dependency graph.
type application struct {
	config *config.Config
	logger *slog.Logger

	db    *mongodb.DB
	cache *rediscache.Cache

	jwtService auth.JWTService

	userService      *service.UserService
	clientService    *service.ClientService
	taskService      *service.TaskService
	dashboardService *service.DashboardService

	sweeper *reminder.Sweeper
}

// newApplication loads configuration, connects the backing stores and
// builds every service. The caller owns the returned application and
// must run it to completion for cleanup to happen.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	lg, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("setting up logger: %w", err)
	}

	db, err := mongodb.Connect(ctx, cfg.Mongo, lg)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	cache, err := rediscache.Connect(ctx, cfg.Redis.URL, lg)
	if err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("creating jwt service: %w", err)
	}

	userStore := mongodb.NewUserStore(db)
	clientStore := mongodb.NewClientStore(db)
	taskStore := mongodb.NewTaskStore(db)

	if err := userStore.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ensuring user indexes: %w", err)
	}

	queue := reminder.NewQueue(cache, lg)
	sweepInterval := time.Duration(cfg.Reminder.SweepIntervalMinutes) * time.Minute

	return &application{
		config:           cfg,
		logger:           lg,
		db:               db,
		cache:            cache,
		jwtService:       jwtService,
		userService:      service.NewUserService(userStore, auth.NewBcryptHasher(), jwtService, cache, lg),
		clientService:    service.NewClientService(clientStore, userStore, cache, lg),
		taskService:      service.NewTaskService(taskStore, clientStore, cache, queue, lg),
		dashboardService: service.NewDashboardService(clientStore, taskStore, cache, lg),
		sweeper:          reminder.NewSweeper(cache, sweepInterval, lg),
	}, nil
}

// run starts the reminder sweep and the HTTP server, then blocks until
// the context is canceled and everything has shut down.
func (app *application) run(ctx context.Context) error {
	app.sweeper.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", app.config.Server.Host, app.config.Server.Port),
		Handler: app.routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		app.cleanup()
		return err
	case <-ctx.Done():
		app.logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("server shutdown failed", "error", err)
	}

	app.cleanup()
	app.logger.Info("shutdown complete")
	return nil
}

// cleanup stops the background sweep and releases the store handles.
func (app *application) cleanup() {
	app.sweeper.Stop()

	if err := app.cache.Close(); err != nil {
		app.logger.Error("failed to close redis connection", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.db.Close(ctx); err != nil {
		app.logger.Error("failed to close mongodb connection", "error", err)
	}
}
