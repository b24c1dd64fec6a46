package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// defaultWSPath is used when websocket.path is not configured.
const defaultWSPath = "/ws"

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)

	// Operational endpoints
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)

	wsPath := s.wsCfg.Path
	if wsPath == "" {
		wsPath = defaultWSPath
	}
	r.Get(wsPath, s.handleWebSocket)

	// Plant endpoints. Non-numeric IDs fall through to the JSON 404.
	r.Route("/plants", func(r chi.Router) {
		r.Get("/", s.handleListPlants)
		r.Post("/", s.handleCreatePlant)

		r.Route("/{id:[0-9]+}", func(r chi.Router) {
			r.Get("/", s.handleGetPlant)
			r.Put("/", s.handleUpdatePlant)
			r.Delete("/", s.handleDeletePlant)
		})
	})

	return r
}

// handleHealth returns the server health status.
// The store is probed when one is attached; a failing probe reports 503.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err != nil {
			s.logger.Warn("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status":  "unavailable",
				"version": s.version,
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
