// Package server wires the chi router, middleware chain and routes of the AI
// service and manages the HTTP server lifecycle.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/medicore/ai-service/config"
	"github.com/medicore/ai-service/interfaces"
	"github.com/medicore/ai-service/logging"
	"github.com/medicore/ai-service/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const bucketEviction = 30 * time.Minute

// Server represents the HTTP server
type Server struct {
	server  *http.Server
	router  chi.Router
	config  *config.Config
	handler interfaces.HTTPHandler
	limiter *RateLimiter
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, handler interfaces.HTTPHandler) *Server {
	router := chi.NewRouter()

	s := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.ListenAddr(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:  router,
		config:  cfg,
		handler: handler,
		limiter: NewRateLimiter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.LoggingMiddleware(logging.Logger()))
	s.router.Use(metrics.Metrics)
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(s.limiter.Middleware)
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Route("/predict", func(r chi.Router) {
		r.Post("/disease", s.handler.PredictDisease)
		r.Post("/recommend-medicine", s.handler.RecommendMedicine)
		r.Get("/restock", s.handler.ServeRestock)
		r.Get("/real-stats", s.handler.ServeRealStats)
		r.Post("/interactions", s.handler.ScreenInteractions)
	})

	s.router.Post("/interactions", s.handler.CheckInteractions)

	s.router.Get("/health", s.handler.HealthCheck)
	s.router.Get("/health/performance", s.handler.ServePerformance)

	s.router.Handle("/metrics", promhttp.Handler())
}

// Handler returns the routed middleware chain
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	s.limiter.Start(bucketEviction)

	logging.Info("Starting server", "addr", s.server.Addr, "env", s.config.Env.String())
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")
	s.limiter.Stop()

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}
