package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/MJE43/roulette-edge-go/internal/predict"
	"github.com/MJE43/roulette-edge-go/internal/session"
	"github.com/MJE43/roulette-edge-go/internal/store"
)

// handleCreateSession registers a new predictor session.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	req := CreateSessionRequest{}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "Invalid JSON format", map[string]any{
				"error": err.Error(),
			})
			return
		}
	}

	if err := ValidateCreateSessionRequest(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}

	opts := predict.Options{
		DecayFactor:  lo.FromPtr(req.DecayFactor),
		PruneEpsilon: lo.FromPtr(req.PruneEpsilon),
		MaxHistory:   lo.FromPtr(req.MaxHistory),
	}
	sess := s.sessions.Create(opts)

	log.Printf("session_created id=%s decay=%g", sess.ID, opts.DecayFactor)

	s.writeJSON(w, http.StatusCreated, CreateSessionResponse{
		ID:        sess.ID,
		CreatedAt: sess.CreatedAt,
	})
}

// handleListSessions returns summaries of all live sessions.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"sessions": s.sessions.List(),
	})
}

// handleRecordSpin folds one observation into a session's predictor,
// journals it, and pushes updates to live subscribers.
func (s *Server) handleRecordSpin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := s.sessions.Get(id)
	if err != nil {
		s.writeError(w, http.StatusNotFound, ErrTypeNotFound, err.Error(), map[string]any{"id": id})
		return
	}

	var req RecordSpinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "Invalid JSON format", map[string]any{
			"error": err.Error(),
		})
		return
	}
	if err := ValidateRecordSpinRequest(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}

	count, err := sess.Record(*req.Position, req.Dealer)
	if err != nil {
		// Validation already guards the position range, so anything here is
		// an internal failure.
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
		return
	}

	log.Printf("spin_recorded session=%s spin=%d position=%d dealer=%q", id, count, *req.Position, req.Dealer)

	// Journal failures must not lose the already-recorded observation; log
	// and keep serving.
	if s.journal != nil {
		spin := store.Spin{
			SessionID: id,
			SpinIndex: count,
			Position:  *req.Position,
			Dealer:    req.Dealer,
		}
		if err := s.journal.SaveSpin(&spin); err != nil {
			log.Printf("journal_write_failed session=%s spin=%d error=%v", id, count, err)
		}
	}

	s.broadcastAfterSpin(sess, id, *req.Position, count)

	s.writeJSON(w, http.StatusOK, RecordSpinResponse{
		SpinIndex: count,
		SpinCount: count,
	})
}

// handlePrediction assembles a prediction report for the upcoming spin.
func (s *Server) handlePrediction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := s.sessions.Get(id)
	if err != nil {
		s.writeError(w, http.StatusNotFound, ErrTypeNotFound, err.Error(), map[string]any{"id": id})
		return
	}

	n := 0
	if raw := r.URL.Query().Get("n"); raw != "" {
		n, err = strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "n must be an integer", nil)
			return
		}
	}
	if err := ValidateTopN(n); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}
	dealer := r.URL.Query().Get("dealer")

	report, err := sess.Predict(n, dealer)
	if err != nil {
		switch {
		case errors.Is(err, predict.ErrNoHistory):
			s.writeError(w, http.StatusConflict, ErrTypeNoHistory, err.Error(), nil)
		case errors.Is(err, predict.ErrNoDistanceData):
			s.writeError(w, http.StatusConflict, ErrTypeNoDistanceData, err.Error(), nil)
		default:
			s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
		}
		return
	}

	log.Printf("prediction_served session=%s spin=%d direction=%s candidates=%d dealer=%q",
		id, report.SpinIndex, report.Direction, len(report.Candidates), dealer)

	s.writeJSON(w, http.StatusOK, PredictionResponse{
		SessionID: id,
		Report:    report,
	})
}

// broadcastAfterSpin pushes the spin event and, when enough history exists,
// the refreshed prediction report to live subscribers.
func (s *Server) broadcastAfterSpin(sess *session.Session, id string, position, count int) {
	s.hub.Broadcast(id, LiveMessage{
		Type:      "spin",
		SessionID: id,
		Data:      map[string]any{"position": position, "spin_index": count},
	})

	report, err := sess.Predict(0, "")
	if err != nil {
		// Early spins legitimately lack distance data; nothing to push yet.
		return
	}
	s.hub.Broadcast(id, LiveMessage{
		Type:      "prediction",
		SessionID: id,
		Data:      report,
	})
}
