package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medicore/ai-service/backend"
	"github.com/medicore/ai-service/config"
	"github.com/medicore/ai-service/data"
	"github.com/medicore/ai-service/handlers"
	"github.com/medicore/ai-service/health"
	"github.com/medicore/ai-service/interactions"
	"github.com/medicore/ai-service/inventory"
	"github.com/medicore/ai-service/logging"
	"github.com/medicore/ai-service/prediction"
	"github.com/medicore/ai-service/recommend"
	"github.com/medicore/ai-service/scheduler"
	"github.com/medicore/ai-service/server"
	"github.com/medicore/ai-service/validation"
)

const shutdownTimeout = 30 * time.Second

// application is the fully wired service
type application struct {
	cfg       *config.Config
	store     *data.DataContainer
	scheduler *scheduler.Scheduler
	server    *server.Server
}

func newBackendClient(cfg *config.Config) *backend.Client {
	return backend.NewClient(backend.Config{
		BaseURL:          cfg.BackendURL,
		Token:            cfg.BackendToken,
		InventoryTimeout: cfg.InventoryTimeout,
		AnalyticsTimeout: cfg.AnalyticsTimeout,
	})
}

func newApplication(cfg *config.Config) *application {
	client := newBackendClient(cfg)
	planner := inventory.NewPlanner(client)
	matcher := interactions.NewDefaultMatcher()

	store := data.NewDataContainer()
	store.SetServerStartTime(time.Now())

	interval := time.Duration(cfg.RestockRefreshMinutes) * time.Minute

	handler := handlers.NewHTTPHandler(handlers.Dependencies{
		DataStore:   store,
		Predictor:   prediction.NewDefaultEngine(),
		Recommender: recommend.NewDefaultRecommender(),
		Checker:     matcher,
		Planner:     planner,
		Backend:     client,
		Health:      health.NewHealthChecker(store, matcher, 3*interval),
		Validator:   validation.NewInputValidator(),
	})

	return &application{
		cfg:       cfg,
		store:     store,
		scheduler: scheduler.NewScheduler(store, planner, interval),
		server:    server.NewServer(cfg, handler),
	}
}

// serve runs the HTTP server and the restock refresh until SIGINT or SIGTERM
func serve(cfg *config.Config) error {
	logging.InitLogger(logging.Options{
		Dir:            cfg.LogDir,
		RetentionWeeks: cfg.LogRetentionWeeks,
		MaxFileSize:    cfg.MaxLogFileSize,
		Env:            cfg.Env,
		Level:          cfg.LogLevel,
	})
	defer logging.Close()

	if cfg.BackendURL == "" {
		logging.Warn("BACKEND_URL not set, serving simulated data only")
	}

	app := newApplication(cfg)
	if err := app.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer app.scheduler.Stop()

	errCh := make(chan error, 1)
	go func() {
		if err := app.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.server.Shutdown(shutdownCtx)
}
