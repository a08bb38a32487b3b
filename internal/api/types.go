package api

import (
	"time"

	"github.com/MJE43/roulette-edge-go/internal/predict"
)

// Error type identifiers surfaced in error payloads.
const (
	ErrTypeValidation     = "validation_error"
	ErrTypeNotFound       = "session_not_found"
	ErrTypeNoHistory      = "no_history"
	ErrTypeNoDistanceData = "no_distance_data"
	ErrTypeInternal       = "internal_error"
)

// ErrorBody is the structured error payload.
type ErrorBody struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

// ErrorResponse wraps an ErrorBody for JSON rendering.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// CreateSessionRequest optionally overrides the daemon's default predictor
// parameters for the new session. Nil fields keep the defaults.
type CreateSessionRequest struct {
	DecayFactor  *float64 `json:"decay_factor,omitempty"`
	PruneEpsilon *float64 `json:"prune_epsilon,omitempty"`
	MaxHistory   *int     `json:"max_history,omitempty"`
}

// CreateSessionResponse identifies the created session.
type CreateSessionResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordSpinRequest is one observed outcome. Position is a pointer so a
// missing field is distinguishable from pocket zero.
type RecordSpinRequest struct {
	Position *int   `json:"position"`
	Dealer   string `json:"dealer,omitempty"`
}

// RecordSpinResponse confirms the recorded spin.
type RecordSpinResponse struct {
	SpinIndex int `json:"spin_index"`
	SpinCount int `json:"spin_count"`
}

// PredictionResponse wraps the predictor report.
type PredictionResponse struct {
	SessionID string          `json:"session_id"`
	Report    *predict.Report `json:"report"`
}

// LiveMessage is pushed over the websocket feed. Type is "spin" for a
// recorded observation and "prediction" when a refreshed report follows it.
type LiveMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Data      any    `json:"data"`
}
