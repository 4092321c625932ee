// Package server implements the HTTP API.
//
// Endpoints:
//
//	GET  /healthz                   - liveness probe with build version
//	POST /v1/render                 - render a posted tree, one format per request
//	POST /v1/diagrams               - render and store a diagram in the gallery
//	GET  /v1/diagrams               - list stored diagrams
//	GET  /v1/diagrams/{id}          - fetch a stored diagram (?format=svg for the image)
//	DELETE /v1/diagrams/{id}        - remove a stored diagram
//	POST /v1/diagrams/{id}/share    - mint a share token for a stored diagram
//	GET  /v1/shared/{token}         - serve a shared diagram's SVG
//
// Gallery routes are only mounted when a DiagramStore is configured.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/session"
)

// Config holds server dependencies and settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Runner executes the rendering pipeline.
	Runner *pipeline.Runner

	// Diagrams enables the gallery endpoints when non-nil.
	Diagrams DiagramStore

	// Sessions stores share tokens. Defaults to an in-memory store.
	Sessions session.Store

	// Logger defaults to log.Default().
	Logger *log.Logger

	// RequestTimeout bounds each request. Defaults to 60s.
	RequestTimeout time.Duration
}

// Server is the HTTP API server.
type Server struct {
	addr     string
	runner   *pipeline.Runner
	diagrams DiagramStore
	sessions session.Store
	logger   *log.Logger
	http     *http.Server
}

// New assembles the router and server.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Sessions == nil {
		cfg.Sessions = session.NewMemoryStore()
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	s := &Server{
		addr:     cfg.Addr,
		runner:   cfg.Runner,
		diagrams: cfg.Diagrams,
		sessions: cfg.Sessions,
		logger:   cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(requestLogger(cfg.Logger))

	r.Get("/healthz", s.handleHealthz)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		if s.diagrams != nil {
			r.Post("/diagrams", s.handleSaveDiagram)
			r.Get("/diagrams", s.handleListDiagrams)
			r.Get("/diagrams/{id}", s.handleGetDiagram)
			r.Delete("/diagrams/{id}", s.handleDeleteDiagram)
			r.Post("/diagrams/{id}/share", s.handleShare)
			r.Get("/shared/{token}", s.handleShared)
		}
	})

	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run starts the server and blocks until the context is canceled or the
// listener fails. Shutdown drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
