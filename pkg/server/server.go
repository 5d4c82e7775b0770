// Package server exposes the dashboard charts over HTTP.
//
// Routes:
//
//	GET /health                      liveness probe
//	GET /api/stats                   current snapshot as JSON
//	GET /charts/{chart}.{format}     one rendered chart (?width=, ?scale=)
//	GET /                            page embedding both charts and a severity listing
//
// Every chart request loads a fresh snapshot from the configured
// [stats.Source] and renders through the shared [pipeline.Runner], so
// artifacts are cached by content hash and repeated requests are cheap.
package server

import (
	"cmp"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/dashchart/pkg/pipeline"
	"github.com/matzehuels/dashchart/pkg/stats"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

const shutdownTimeout = 15 * time.Second

// Config configures a [Server].
type Config struct {
	Addr string

	// Source provides the snapshot for every request.
	Source stats.Source
	// SourceName labels the source in logs and hooks.
	SourceName string

	// Runner renders and caches charts. Nil means an uncached runner.
	Runner *pipeline.Runner

	// Defaults holds theme and metrics applied to every chart. Charts,
	// Formats and Width are taken from the request.
	Defaults pipeline.Options

	Logger *log.Logger
}

// Server is the dashboard HTTP service.
type Server struct {
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New builds a server and its routes.
func New(cfg Config) *Server {
	cfg.Addr = cmp.Or(cfg.Addr, DefaultAddr)
	cfg.SourceName = cmp.Or(cfg.SourceName, "static")
	if cfg.Source == nil {
		cfg.Source = stats.NewStaticSource(nil)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, logger)
	}

	s := &Server{cfg: cfg, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logging(s.logger))
	r.Use(ServerHeader)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/api/stats", s.handleStats)
	r.Get("/charts/{chart}.{format}", s.handleChart)
	r.Get("/", s.handleIndex)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String(), "source", s.cfg.SourceName)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
