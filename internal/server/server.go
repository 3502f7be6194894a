package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/pacer/internal/config"
	"github.com/claude/pacer/internal/session"
	"github.com/claude/pacer/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       *storage.DB
	sessions *session.Manager
	log      *slog.Logger
	apiKey   string
	defaults config.DefaultsConfig
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, sessions *session.Manager, apiKey string, defaults config.DefaultsConfig, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		sessions: sessions,
		log:      log,
		apiKey:   apiKey,
		defaults: defaults,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Mutating endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/plans", s.handleCreatePlan)
		r.Put("/api/v1/plans/{id}", s.handleUpdatePlan)
		r.Delete("/api/v1/plans/{id}", s.handleDeletePlan)
		r.Post("/api/v1/sessions", s.handleCreateSession)
	})

	// Read and session-control endpoints
	s.router.Get("/api/v1/plans", s.handleListPlans)
	s.router.Get("/api/v1/plans/{id}", s.handleGetPlan)
	s.router.Post("/api/v1/sessions/{id}/start", s.handleStartSession)
	s.router.Post("/api/v1/sessions/{id}/toggle", s.handleToggleSession)
	s.router.Post("/api/v1/sessions/{id}/end", s.handleEndSession)
	s.router.Get("/api/v1/sessions/{id}", s.handleGetSession)
	s.router.Get("/api/v1/sessions/{id}/timeline", s.handleGetSessionTimeline)
	s.router.Get("/api/v1/history", s.handleHistory)
	s.router.Get("/api/v1/history/stats", s.handleHistoryStats)
}

// Mount attaches an extra handler subtree, used for the MCP endpoint.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.Mount(pattern, h)
}
