// Package api provides the HTTP REST API for the portsim scan simulator.
// It wires the scan engine, the live WebSocket stream, Prometheus metrics
// and the Swagger UI onto a single gorilla/mux router.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/anstrom/portsim/docs/swagger" // Import generated swagger docs
	apihandlers "github.com/anstrom/portsim/internal/api/handlers"
	"github.com/anstrom/portsim/internal/api/middleware"
	"github.com/anstrom/portsim/internal/config"
	"github.com/anstrom/portsim/internal/logging"
	"github.com/anstrom/portsim/internal/metrics"
	"github.com/anstrom/portsim/internal/scanning"
	"github.com/anstrom/portsim/internal/scheduler"
)

// Engine is the scan engine surface the server exposes.
type Engine interface {
	apihandlers.ScanController
	Status() scanning.Status
	StartIfIdle(cfg scanning.Config) (bool, error)
	Subscribe(obs scanning.Observer) func()
}

// Server represents the API server.
type Server struct {
	httpServer  *http.Server
	router      *mux.Router
	config      *config.Config
	engine      Engine
	logger      *slog.Logger
	metrics     *metrics.PrometheusMetrics
	hub         *apihandlers.WebSocketHandler
	schedules   *scheduler.Scheduler
	unsubscribe func()
	startTime   time.Time
}

// New creates a new API server instance. pm may be nil when metrics are
// disabled.
func New(cfg *config.Config, engine Engine, pm *metrics.PrometheusMetrics) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}

	logger := logging.Default().WithComponent("api").Logger

	var stream metrics.StreamRecorder
	if pm != nil {
		stream = pm
	}
	schedules, err := newScheduler(cfg.Schedules, engine)
	if err != nil {
		return nil, err
	}

	hub := apihandlers.NewWebSocketHandler(engine, logger, stream)

	server := &Server{
		router:      mux.NewRouter(),
		config:      cfg,
		engine:      engine,
		logger:      logger,
		metrics:     pm,
		hub:         hub,
		schedules:   schedules,
		unsubscribe: engine.Subscribe(hub),
		startTime:   time.Now(),
	}

	server.setupMiddleware()
	server.setupRoutes()

	server.httpServer = &http.Server{
		Addr:         cfg.GetAPIAddress(),
		Handler:      server.handler(),
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
		IdleTimeout:  cfg.API.IdleTimeout,
	}

	return server, nil
}

// newScheduler registers the configured recurring scans.
func newScheduler(entries []config.ScheduleConfig, engine scheduler.Starter) (*scheduler.Scheduler, error) {
	s := scheduler.New(engine, logging.Default())
	for _, entry := range entries {
		scan, err := entry.ScanConfig()
		if err != nil {
			return nil, fmt.Errorf("schedule %q: %w", entry.Name, err)
		}
		if _, err := s.AddJob(scheduler.Job{Name: entry.Name, Spec: entry.Cron, Scan: scan}); err != nil {
			return nil, fmt.Errorf("schedule %q: %w", entry.Name, err)
		}
	}
	return s, nil
}

// handler wraps the router with CORS. It sits outside mux so preflight
// requests for POST-only routes are answered.
func (s *Server) handler() http.Handler {
	cors := s.config.API.CORS
	if !cors.Enabled {
		return s.router
	}
	return handlers.CORS(
		handlers.AllowedOrigins(cors.AllowedOrigins),
		handlers.AllowedMethods(cors.AllowedMethods),
		handlers.AllowedHeaders(cors.AllowedHeaders),
	)(s.router)
}

// Start starts the API server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting API server",
		"address", s.httpServer.Addr,
		"read_timeout", s.httpServer.ReadTimeout,
		"write_timeout", s.httpServer.WriteTimeout)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("API server failed: %w", err)
		}
	}()

	if err := s.schedules.Start(); err != nil {
		s.logger.Warn("Scheduler not started", "error", err)
	}

	if s.metrics != nil && s.config.Metrics.Enabled {
		go func() {
			if err := s.metrics.StartPeriodicUpdates(ctx, s.config.Metrics.RefreshSchedule); err != nil {
				s.logger.Error("System metrics refresh disabled", "error", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		return s.Stop()
	case err := <-errChan:
		s.schedules.Stop()
		s.shutdownStream()
		return err
	}
}

// Stop gracefully stops the API server.
func (s *Server) Stop() error {
	s.logger.Info("Stopping API server")
	s.schedules.Stop()
	s.shutdownStream()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.API.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("API server shutdown error", "error", err)
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("API server stopped successfully")
	return nil
}

func (s *Server) shutdownStream() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	_ = s.hub.Close()
}

// setupMiddleware configures middleware for the API server.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recovery(s.logger))
	s.router.Use(middleware.Logging(s.logger))
	if s.metrics != nil {
		s.router.Use(middleware.Metrics(s.metrics))
	}
	s.router.Use(middleware.SecurityHeaders())
	s.router.Use(middleware.ContentType())
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	health := apihandlers.NewHealthHandler(s.engine, s.logger)
	api.HandleFunc("/liveness", health.Liveness).Methods(http.MethodGet)
	api.HandleFunc("/health", health.Health).Methods(http.MethodGet)
	api.HandleFunc("/status", health.Status).Methods(http.MethodGet)
	api.HandleFunc("/version", health.Version).Methods(http.MethodGet)

	scan := apihandlers.NewScanHandler(s.engine, s.logger, s.config.API.MaxRequestSize)
	api.HandleFunc("/scan", scan.GetScan).Methods(http.MethodGet)
	api.HandleFunc("/scan/start", scan.StartScan).Methods(http.MethodPost)
	api.HandleFunc("/scan/pause", scan.PauseScan).Methods(http.MethodPost)
	api.HandleFunc("/scan/resume", scan.ResumeScan).Methods(http.MethodPost)
	api.HandleFunc("/scan/cancel", scan.CancelScan).Methods(http.MethodPost)
	api.HandleFunc("/scan/results", scan.GetResults).Methods(http.MethodGet)
	api.HandleFunc("/scan/summary", scan.GetSummary).Methods(http.MethodGet)
	api.HandleFunc("/scan/export", scan.ExportResults).Methods(http.MethodGet)
	api.HandleFunc("/scan/copy", scan.CopyResults).Methods(http.MethodGet)

	api.HandleFunc("/services", apihandlers.ListServices).Methods(http.MethodGet)
	api.HandleFunc("/services/{port}", apihandlers.GetService).Methods(http.MethodGet)

	api.HandleFunc("/schedules", apihandlers.NewScheduleHandler(s.schedules).ListSchedules).Methods(http.MethodGet)

	s.router.HandleFunc("/ws/scan", s.hub.ScanWebSocket).Methods(http.MethodGet)

	if s.metrics != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.metrics.GetRegistry(), promhttp.HandlerOpts{
			Registry: s.metrics.GetRegistry(),
		})).Methods(http.MethodGet)
	}

	s.router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
	))

	s.router.HandleFunc("/docs", s.redirectToSwagger).Methods(http.MethodGet)
	s.router.HandleFunc("/docs/", s.redirectToSwagger).Methods(http.MethodGet)

	s.router.HandleFunc("/", s.apiIndex).Methods(http.MethodGet)
}

// apiIndex returns API information for root requests.
func (s *Server) apiIndex(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"service": "portsim API",
		"version": "v1",
		"endpoints": map[string]string{
			"scan":      "/api/v1/scan",
			"results":   "/api/v1/scan/results",
			"schedules": "/api/v1/schedules",
			"health":    "/api/v1/health",
			"stream":    "/ws/scan",
			"docs":      "/swagger/",
		},
		"uptime":    time.Since(s.startTime).String(),
		"timestamp": time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("Failed to encode API index response", "error", err)
	}
}

// redirectToSwagger redirects to the Swagger UI.
func (s *Server) redirectToSwagger(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
}

// GetRouter returns the configured router.
func (s *Server) GetRouter() *mux.Router {
	return s.router
}

// Handler returns the full HTTP handler including CORS.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// GetAddress returns the server address.
func (s *Server) GetAddress() string {
	return s.httpServer.Addr
}
