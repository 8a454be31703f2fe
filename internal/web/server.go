// Package web provides the HTTP server and JSON handlers for the report
// service: report upload and retrieval, column listing, and per-column
// aggregation.
package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/reportdev/reportd/internal/config"
	"github.com/reportdev/reportd/internal/report"
	mw "github.com/reportdev/reportd/internal/web/middleware"
)

// Server is the HTTP server for the report service.
type Server struct {
	service *report.Service
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a Server wired to the given service and configuration.
func NewServer(service *report.Service, cfg *config.Config) *Server {
	s := &Server{
		service: service,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/report", func(r chi.Router) {
		r.Get("/", s.handleListReports)
		r.Post("/", s.handleCreateReport)

		r.Route("/{reportID}", func(r chi.Router) {
			r.Get("/", s.handleGetReport)
			r.Delete("/", s.handleDeleteReport)

			r.Get("/column", s.handleListColumns)
			r.Get("/column/{label}", s.handleColumnData)
		})
	})
}

// Start begins listening for HTTP requests using the configured timeouts.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"active_uploads": s.service.ActiveUploads(),
	})
}
