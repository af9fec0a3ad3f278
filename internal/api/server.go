// Copyright (c) 2026 FutureKey. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/huyhoang189/futurekey-be-sub002/internal/core/career"
	"github.com/huyhoang189/futurekey-be-sub002/internal/core/location"
	"github.com/huyhoang189/futurekey-be-sub002/internal/core/overview"
	"github.com/huyhoang189/futurekey-be-sub002/internal/core/question"
	"github.com/huyhoang189/futurekey-be-sub002/internal/core/school"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/config"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/constants"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/metrics"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. Always 200 while the process runs.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. 200 only when every dependency answers.
	Readiness http.HandlerFunc

	Location *location.Handler
	Career   *career.Handler
	School   *school.Handler
	Question *question.Handler
	Overview *overview.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, limiter middleware.Limiter, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(metrics.InstrumentHandler)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(limiter))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// # Administrative API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/provinces", h.Location.ProvinceRoutes())
		api.Mount("/communes", h.Location.CommuneRoutes())
		api.Mount("/career-categories", h.Career.CategoryRoutes())
		api.Mount("/careers", h.Career.CareerRoutes())
		api.Mount("/questions", h.Question.Routes())
		api.Mount("/schools", h.School.SchoolRoutes())
		api.Mount("/classes", h.School.ClassRoutes())
		api.Mount("/system-admin/overview", h.Overview.Routes())
	})

	// # Public API
	r.Mount("/api/v2/public", h.Career.PublicRoutes())

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
