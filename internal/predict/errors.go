package predict

import (
	"errors"

	"github.com/MJE43/roulette-edge-go/internal/wheel"
)

var (
	// ErrNoHistory is returned when a prediction is requested before any
	// spin has been recorded.
	ErrNoHistory = errors.New("no spins recorded yet")

	// ErrNoDistanceData is returned when the upcoming spin's direction has
	// no recorded distance samples yet. A direction only gains its first
	// sample once a spin of that parity has followed another spin.
	ErrNoDistanceData = errors.New("no distance data for spin direction")

	// ErrInvalidPosition mirrors the wheel package's sentinel so callers can
	// match either.
	ErrInvalidPosition = wheel.ErrInvalidPosition
)
