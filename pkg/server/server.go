// Package server exposes the statboard HTTP API: report CRUD, layout
// resolution, publish validation, and rendered report views.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/statboard/statboard/pkg/editor"
	"github.com/statboard/statboard/pkg/pipeline"
	"github.com/statboard/statboard/pkg/store"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Server wires the statboard components behind a chi router.
type Server struct {
	store     store.Store
	runner    *pipeline.Runner
	validator *editor.Validator
	logger    *log.Logger
	http      *http.Server
}

// New creates a Server over the given collaborators.
func New(st store.Store, runner *pipeline.Runner, validator *editor.Validator, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:     st,
		runner:    runner,
		validator: validator,
		logger:    logger,
	}
}

// Router builds the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(recoverer(s.logger))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/reports", func(r chi.Router) {
			r.Get("/", s.handleListReports)
			r.Get("/{id}", s.handleGetReport)
			r.Put("/{id}", s.handlePutReport)
			r.Delete("/{id}", s.handleDeleteReport)
		})
		r.Route("/layout", func(r chi.Router) {
			r.Post("/resolve", s.handleResolve)
			r.Post("/validate", s.handleValidate)
		})
	})

	r.Get("/reports/{id}/view", s.handleView)

	return r
}

// ListenAndServe starts the server and blocks until it stops.
func (s *Server) ListenAndServe(addr string) error {
	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	s.logger.Info("listening", "addr", addr)
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}
