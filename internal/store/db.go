// Package store persists an append-only journal of accepted spin
// observations for offline audit. The journal is write-only from the
// service's point of view: predictor state is never rebuilt from it, so a
// restarted process always starts from an empty estimator.
package store

import "time"

// DB is the journal interface.
type DB interface {
	Close() error
	Migrate() error
	SaveSpin(spin *Spin) error
	SaveSpins(spins []Spin) error
	GetSpins(sessionID string, limit, offset int) ([]Spin, error)
	CountSpins(sessionID string) (int, error)
}

// Spin is one journaled observation.
type Spin struct {
	ID         string    `json:"id" db:"id"`
	SessionID  string    `json:"session_id" db:"session_id"`
	SpinIndex  int       `json:"spin_index" db:"spin_index"`
	Position   int       `json:"position" db:"position"`
	Dealer     string    `json:"dealer,omitempty" db:"dealer"`
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
}
