package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"mercator-hq/nginx-exporter/pkg/config"
	sectls "mercator-hq/nginx-exporter/pkg/security/tls"
	"mercator-hq/nginx-exporter/pkg/server/middleware"
	"mercator-hq/nginx-exporter/pkg/telemetry/health"
	"mercator-hq/nginx-exporter/pkg/telemetry/tracing"
)

// Probe endpoints.
const (
	HealthPath = "/health"
	ReadyPath  = "/ready"
)

// Server serves the metrics handler and the probe endpoints.
type Server struct {
	config     *config.ServerConfig
	metrics    http.Handler
	health     *health.Checker
	httpServer *http.Server
	listener   net.Listener

	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a server that answers cfg.MetricsPath with metrics.
// A nil checker serves readiness with no checks registered.
func NewServer(cfg *config.ServerConfig, metrics http.Handler, checker *health.Checker) *Server {
	if checker == nil {
		checker = health.New(0)
	}
	return &Server{
		config:  cfg,
		metrics: metrics,
		health:  checker,
	}
}

// Start listens on the configured address and blocks until ctx is
// cancelled or the server fails. Cancellation triggers a graceful
// shutdown bounded by the configured shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}

	tlsConfig, reloader, err := sectls.NewServerConfig(&s.config.TLS, slog.Default())
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to configure TLS: %w", err)
	}

	ln, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddress, err)
	}
	if tlsConfig != nil {
		ln = tls.NewListener(ln, tlsConfig)
		go reloader.Run(ctx)
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}
	s.isRunning = true
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting metrics server",
			"address", ln.Addr().String(),
			"metrics_path", s.config.MetricsPath,
			"tls", tlsConfig != nil,
		)

		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		return err
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.RLock()
		running := s.isRunning
		s.mu.RUnlock()
		if !running {
			return
		}

		slog.Info("initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("metrics server stopped")
	})

	return shutdownErr
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	// Every scrape consumes log bytes, so only GET (and HEAD) may trigger one.
	mux.Handle(http.MethodGet+" "+s.config.MetricsPath, s.metrics)
	mux.Handle(HealthPath, s.health.LivenessHandler())
	mux.Handle(ReadyPath, s.health.ReadinessHandler())

	var handler http.Handler = mux

	poweredBy := s.config.PoweredBy
	if poweredBy == "-" {
		poweredBy = ""
	}
	handler = middleware.PoweredByMiddleware(poweredBy)(handler)

	// Server spans, continuing any incoming trace context
	handler = tracing.HTTPMiddleware(nil)(handler)

	// Request ID middleware
	handler = middleware.RequestIDMiddleware(handler)

	// Logging middleware
	handler = middleware.LoggingMiddleware(handler)

	// Recovery middleware (outermost)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}

// Addr returns the bound address once the server is running.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}
