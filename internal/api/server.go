// Package api exposes the predictor over HTTP: session management, spin
// recording, prediction queries, and a websocket live feed.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MJE43/roulette-edge-go/internal/session"
	"github.com/MJE43/roulette-edge-go/internal/store"
)

// Server handles HTTP requests.
type Server struct {
	sessions *session.Manager
	journal  store.DB
	hub      *Hub
}

// NewServer creates a new API server. journal may be nil to run without the
// audit journal (tests, ephemeral sessions).
func NewServer(sessions *session.Manager, journal store.DB) *Server {
	s := &Server{
		sessions: sessions,
		journal:  journal,
		hub:      NewHub(),
	}
	go s.hub.Run()
	return s
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Heartbeat("/health"))

	r.Post("/sessions", s.handleCreateSession)
	r.Get("/sessions", s.handleListSessions)
	r.Post("/sessions/{id}/spins", s.handleRecordSpin)
	r.Get("/sessions/{id}/prediction", s.handlePrediction)
	r.Get("/sessions/{id}/live", s.handleLive)

	return r
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a structured error response.
func (s *Server) writeError(w http.ResponseWriter, status int, errType, message string, context map[string]any) {
	s.writeJSON(w, status, ErrorResponse{Error: ErrorBody{
		Type:    errType,
		Message: message,
		Context: context,
	}})
}
