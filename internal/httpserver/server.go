// Package httpserver hosts the curator form: routing, request logging,
// rate limiting and graceful shutdown.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/goliatone/go-curatorform/components/curatorform"
	"github.com/goliatone/go-curatorform/internal/config"
)

// Server wraps an http.Server configured for the curator form.
type Server struct {
	cfg     *config.Config
	logger  *slog.Logger
	mux     *http.ServeMux
	http    *http.Server
	clients *ClientResolver
	// FormPath is the route the form was mounted on.
	FormPath string
}

// New builds the server and mounts the form component built from fns.
func New(cfg *config.Config, logger *slog.Logger, fns ...curatorform.OptionFn) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("httpserver: config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	proxies, err := cfg.TrustedProxyPrefixes()
	if err != nil {
		return nil, fmt.Errorf("httpserver: %w", err)
	}

	s := &Server{cfg: cfg, logger: logger, mux: http.NewServeMux(), clients: NewClientResolver(proxies)}
	s.mux.HandleFunc("/healthz", s.handleHealth)

	opts := append([]curatorform.OptionFn{curatorform.WithLogger(logger)}, fns...)
	if cfg.SuccessRedirect != "" {
		opts = append(opts, curatorform.WithSuccessRedirect(cfg.SuccessRedirect))
	}
	path, err := curatorform.New(opts...).RegisterRoutes(s.mux, "/")
	if err != nil {
		return nil, fmt.Errorf("httpserver: mount form: %w", err)
	}
	s.FormPath = path

	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the full middleware chain.
func (s *Server) Handler() http.Handler {
	limited := RateLimitMiddleware(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst, s.clients, s.mux)
	return LoggingMiddleware(s.logger, s.clients, limited)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write([]byte("ok\n"))
	}
}

// Run serves until ctx is cancelled, then shuts down within the configured
// timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server_listening", "addr", s.cfg.Addr, "form", s.FormPath)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("server_shutting_down")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("httpserver: shutdown: %w", err)
	}
	return <-errCh
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// LoggingMiddleware logs one record per request.
func LoggingMiddleware(logger *slog.Logger, clients *ClientResolver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"client", clients.ClientIP(r),
		)
	})
}
