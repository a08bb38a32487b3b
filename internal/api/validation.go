package api

import (
	"fmt"

	"github.com/MJE43/roulette-edge-go/internal/wheel"
)

// ValidateCreateSessionRequest checks optional predictor overrides.
func ValidateCreateSessionRequest(req *CreateSessionRequest) error {
	if req.DecayFactor != nil && (*req.DecayFactor <= 0 || *req.DecayFactor > 1) {
		return fmt.Errorf("decay_factor must be in (0, 1], got %g", *req.DecayFactor)
	}
	if req.PruneEpsilon != nil && *req.PruneEpsilon <= 0 {
		return fmt.Errorf("prune_epsilon must be > 0, got %g", *req.PruneEpsilon)
	}
	if req.MaxHistory != nil && *req.MaxHistory <= 0 {
		return fmt.Errorf("max_history must be > 0, got %d", *req.MaxHistory)
	}
	return nil
}

// ValidateRecordSpinRequest enforces the console contract: the core never
// receives an out-of-range or missing position.
func ValidateRecordSpinRequest(req *RecordSpinRequest) error {
	if req.Position == nil {
		return fmt.Errorf("position is required")
	}
	if !wheel.Valid(*req.Position) {
		return fmt.Errorf("position must be 0-36, got %d", *req.Position)
	}
	return nil
}

// ValidateTopN bounds the requested candidate count. Zero means default.
func ValidateTopN(n int) error {
	if n < 0 {
		return fmt.Errorf("n must be >= 0")
	}
	if n > wheel.Slots {
		return fmt.Errorf("n too large (max %d distinct distances exist)", wheel.Slots)
	}
	return nil
}
