// Package api exposes menu sessions over HTTP.
//
// A session is created by running a query, then navigated with follow-up
// requests. Sessions live in a [menus.Registry] and expire when idle; every
// navigation call renews the expiry.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/naturelab/lifelist/pkg/menus"
	"github.com/naturelab/lifelist/pkg/pipeline"
)

// Server is the HTTP API server for lifelist.
type Server struct {
	router   chi.Router
	runner   *pipeline.Runner
	sessions *menus.Registry
	log      *log.Logger
	defaults pipeline.Options
}

// NewServer creates and configures the HTTP server. The defaults supply
// display settings for requests that don't override them; the Argument and
// Refresh fields are ignored.
func NewServer(runner *pipeline.Runner, sessions *menus.Registry, logger *log.Logger, defaults pipeline.Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:   runner,
		sessions: sessions,
		log:      logger,
		defaults: defaults,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/v1/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Get("/{sessionID}/pages/{page}", s.handleGetPage)
		r.Post("/{sessionID}/nav", s.handleNav)
		r.Delete("/{sessionID}", s.handleDeleteSession)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
