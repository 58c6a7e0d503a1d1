// Package server exposes the citemap pipeline over HTTP.
//
// Routes:
//
//	GET  /health        liveness and build version
//	POST /v1/analyze    graph in, layout JSON out
//	POST /v1/subjects   graph in, one layout per subject out
//	POST /v1/render     graph or layout in, rendered artifact out
//
// Request bodies carry either nodes and links, as read by pkg/io, or a bare
// adjacency list. Options in the body override the server's defaults.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/citemap/pkg/pipeline"
)

// Default server settings.
const (
	DefaultAddr            = "127.0.0.1:8080"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 2 * time.Minute
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBodyBytes    = 32 << 20
	DefaultCacheEntries    = 256
	DefaultMaxAttempts     = 10000
)

// Options configures the HTTP server.
type Options struct {
	Addr            string        `toml:"addr"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
	// MaxBodyBytes caps request bodies; larger requests get 413.
	MaxBodyBytes int64 `toml:"max_body_bytes"`
	// CacheEntries bounds the in-memory layout cache.
	CacheEntries int `toml:"cache_entries"`
	// MaxAttempts caps the per-component retry budget a request may ask
	// for; requests above it get INVALID_OPTIONS.
	MaxAttempts    int      `toml:"max_attempts"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// DefaultOptions returns the default server settings.
func DefaultOptions() Options {
	return Options{
		Addr:            DefaultAddr,
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		MaxBodyBytes:    DefaultMaxBodyBytes,
		CacheEntries:    DefaultCacheEntries,
		MaxAttempts:     DefaultMaxAttempts,
	}
}

// Server serves the pipeline over HTTP.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	opts     Options
	logger   *log.Logger
	handler  http.Handler
}

// New creates a server. defaults are the pipeline options requests start
// from before applying their own overrides.
func New(runner *pipeline.Runner, defaults pipeline.Options, opts Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	// The server's own defaults always pass the limit.
	opts.MaxAttempts = max(opts.MaxAttempts, defaults.Layout.MaxAttempts)
	s := &Server{runner: runner, defaults: defaults, opts: opts, logger: logger}
	s.handler = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(s.logger))
	if len(s.opts.AllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.Get("/health", s.health)
	router.Route("/v1", func(r chi.Router) {
		r.Use(limitBody(s.opts.MaxBodyBytes))
		r.Post("/analyze", s.analyze)
		r.Post("/subjects", s.subjects)
		r.Post("/render", s.render)
	})
	return router
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.handler,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.opts.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	timeout := s.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
