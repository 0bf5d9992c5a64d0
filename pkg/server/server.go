package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"pagecraft-hq/callisto/pkg/audit"
	"pagecraft-hq/callisto/pkg/config"
	"pagecraft-hq/callisto/pkg/library/manager"
	"pagecraft-hq/callisto/pkg/placeholder/engine"
	"pagecraft-hq/callisto/pkg/server/middleware"
	"pagecraft-hq/callisto/pkg/telemetry/health"
	"pagecraft-hq/callisto/pkg/telemetry/logging"
	"pagecraft-hq/callisto/pkg/telemetry/metrics"
	"pagecraft-hq/callisto/pkg/template/parser"
)

// Server is the HTTP API server for template extraction and substitution.
type Server struct {
	config      *config.Config
	manager     *manager.Manager
	engine      *engine.Engine
	parser      *parser.Parser
	recorder    *audit.Recorder
	collector   *metrics.Collector
	checker     *health.Checker
	logger      *logging.Logger
	maxBodySize int64

	version   string
	commit    string
	buildTime string

	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// New creates a new API server over the given template manager.
func New(cfg *config.Config, mgr *manager.Manager, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Server{
		config:  cfg,
		manager: mgr,
		engine:  mgr.Engine(),
		parser: parser.NewParser().
			WithMaxFileSize(cfg.Engine.MaxFileSize).
			WithMaxDepth(cfg.Engine.MaxDepth),
		collector:    metrics.NewDisabledCollector(),
		checker:      health.New(0),
		logger:       logger,
		maxBodySize:  cfg.Engine.MaxFileSize,
		shutdownChan: make(chan struct{}),
	}
}

// WithRecorder sets the audit recorder. Without one, operations are not
// audited.
func (s *Server) WithRecorder(recorder *audit.Recorder) *Server {
	s.recorder = recorder
	return s
}

// WithCollector sets the metrics collector.
func (s *Server) WithCollector(collector *metrics.Collector) *Server {
	s.collector = collector
	return s
}

// WithHealthChecker sets the health checker backing /ready.
func (s *Server) WithHealthChecker(checker *health.Checker) *Server {
	s.checker = checker
	return s
}

// WithVersionInfo sets the build information served at /version.
func (s *Server) WithVersionInfo(version, commit, buildTime string) *Server {
	s.version = version
	s.commit = commit
	s.buildTime = buildTime
	return s
}

// Start starts the HTTP server and blocks until shutdown, triggered by
// context cancellation, SIGINT/SIGTERM, or RequestShutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	s.httpServer = &http.Server{
		Addr:           s.config.Server.ListenAddress,
		Handler:        s.Handler(),
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("Starting API server", "address", s.config.Server.ListenAddress)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		s.logger.Info("Context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		s.logger.Info("Received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		return s.Shutdown(context.Background())
	}
}

// RequestShutdown asks a running server to shut down.
func (s *Server) RequestShutdown() {
	s.shutdownOnce.Do(func() {
		close(s.shutdownChan)
	})
}

// Shutdown gracefully shuts down the server within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	s.logger.Info("Initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	var shutdownErr error
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			shutdownErr = fmt.Errorf("server shutdown: %w", err)
		}
	}

	s.mu.Lock()
	s.isRunning = false
	s.mu.Unlock()

	s.logger.Info("API server stopped")
	return shutdownErr
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler with its middleware chain,
// usable directly in tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/extract", s.handleExtract)
	mux.HandleFunc("POST /v1/substitute", s.handleSubstitute)
	mux.HandleFunc("GET /v1/templates", s.handleListTemplates)
	mux.HandleFunc("GET /v1/templates/{id}", s.handleGetTemplate)
	mux.HandleFunc("GET /v1/templates/{id}/placeholders", s.handleTemplatePlaceholders)
	mux.HandleFunc("POST /v1/templates/{id}/substitute", s.handleTemplateSubstitute)
	mux.HandleFunc("POST /v1/templates/reload", s.handleReload)

	health.Register(mux, s.checker, s.version, s.commit, s.buildTime)

	if s.config.Telemetry.Metrics.Enabled {
		mux.Handle("GET "+s.config.Telemetry.Metrics.Path, s.collector.Handler())
	}

	var handler http.Handler = mux
	handler = middleware.Metrics(s.collector)(handler)
	handler = middleware.Logging(s.logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(s.logger)(handler)

	return handler
}
