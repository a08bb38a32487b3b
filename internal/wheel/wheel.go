// Package wheel models the physical layout of a European roulette wheel:
// the fixed 37-slot ordering, directional step distances around it, and the
// color and zone classification of each pocket.
package wheel

import (
	"errors"
	"fmt"
)

// Slots is the number of pockets on a European wheel (0-36).
const Slots = 37

// ErrInvalidPosition is returned for positions outside [0, 36].
var ErrInvalidPosition = errors.New("position outside 0-36")

// Ordering is the physical arrangement of pockets around the wheel,
// clockwise from zero. It is distinct from numeric order and fixed for the
// lifetime of the process.
var Ordering = [Slots]int{
	0, 32, 15, 19, 4, 21, 2, 25, 17, 34,
	6, 27, 13, 36, 11, 30, 8, 23, 10, 5,
	24, 16, 33, 1, 20, 14, 31, 9, 22, 18,
	29, 7, 28, 12, 35, 3, 26,
}

// slotIndex maps pocket number -> index in Ordering, built once at init.
var slotIndex [Slots]int

// Direction is the traversal sense of a spin around the wheel ordering.
type Direction string

const (
	Clockwise     Direction = "clockwise"
	Anticlockwise Direction = "anticlockwise"
)

// DirectionForSpin returns the direction of the given 1-based spin index.
// Odd spins run clockwise, even spins anticlockwise. This alternation is a
// fixed data-collection convention, not an observed property of the wheel.
func DirectionForSpin(spinIndex int) Direction {
	if spinIndex%2 == 1 {
		return Clockwise
	}
	return Anticlockwise
}

// Color classifies a pocket as red, black, or green.
type Color string

const (
	Red   Color = "red"
	Black Color = "black"
	Green Color = "green"
)

// Red numbers on a standard European layout; black is every other non-zero
// pocket.
var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true,
	12: true, 14: true, 16: true, 18: true, 19: true,
	21: true, 23: true, 25: true, 27: true, 30: true,
	32: true, 34: true, 36: true,
}

// ZoneID identifies one of the 8 contiguous wheel zones (1-8).
type ZoneID int

// ZoneCount is the number of zones partitioning the wheel.
const ZoneCount = 8

// zoneSizes gives the length of each zone in wheel order. Seven zones of
// five pockets plus a trailing zone of two cover all 37 slots.
var zoneSizes = [ZoneCount]int{5, 5, 5, 5, 5, 5, 5, 2}

// zoneOf maps pocket number -> zone, built once at init from zoneSizes so
// the partition stays contiguous in wheel order by construction.
var zoneOf [Slots]ZoneID

func init() {
	for idx, pocket := range Ordering {
		slotIndex[pocket] = idx
	}

	idx := 0
	for z, size := range zoneSizes {
		for i := 0; i < size; i++ {
			zoneOf[Ordering[idx]] = ZoneID(z + 1)
			idx++
		}
	}
	if idx != Slots {
		panic(fmt.Sprintf("wheel: zone sizes cover %d of %d slots", idx, Slots))
	}
}

// Valid reports whether position is a real pocket number.
func Valid(position int) bool {
	return position >= 0 && position < Slots
}

// IndexOf returns the slot index of position in the wheel ordering.
func IndexOf(position int) (int, error) {
	if !Valid(position) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPosition, position)
	}
	return slotIndex[position], nil
}

// PositionAt returns the pocket number at the given slot index, reduced
// modulo the wheel size. Negative indices wrap the same way.
func PositionAt(index int) int {
	idx := ((index % Slots) + Slots) % Slots
	return Ordering[idx]
}

// ClockwiseDistance is the number of clockwise steps from a to b around the
// wheel ordering. It is a directional count over the full ring, not a
// shortest-path distance, so ClockwiseDistance(a, b) and
// AnticlockwiseDistance(a, b) are independent values summing to 0 mod 37.
func ClockwiseDistance(a, b int) (int, error) {
	ai, err := IndexOf(a)
	if err != nil {
		return 0, err
	}
	bi, err := IndexOf(b)
	if err != nil {
		return 0, err
	}
	return ((bi - ai) + Slots) % Slots, nil
}

// AnticlockwiseDistance is the number of anticlockwise steps from a to b.
func AnticlockwiseDistance(a, b int) (int, error) {
	ai, err := IndexOf(a)
	if err != nil {
		return 0, err
	}
	bi, err := IndexOf(b)
	if err != nil {
		return 0, err
	}
	return ((ai - bi) + Slots) % Slots, nil
}

// Distance returns the directional step count from a to b.
func Distance(dir Direction, a, b int) (int, error) {
	if dir == Clockwise {
		return ClockwiseDistance(a, b)
	}
	return AnticlockwiseDistance(a, b)
}

// Project returns the pocket reached by stepping the given distance from
// position in the given direction.
func Project(dir Direction, position, distance int) (int, error) {
	idx, err := IndexOf(position)
	if err != nil {
		return 0, err
	}
	if dir == Clockwise {
		return PositionAt(idx + distance), nil
	}
	return PositionAt(idx - distance), nil
}

// ColorOf classifies a pocket. Zero is green; the rest follow the standard
// European red/black assignment.
func ColorOf(position int) (Color, error) {
	if !Valid(position) {
		return "", fmt.Errorf("%w: %d", ErrInvalidPosition, position)
	}
	switch {
	case position == 0:
		return Green, nil
	case redNumbers[position]:
		return Red, nil
	default:
		return Black, nil
	}
}

// ZoneOf returns the zone containing a pocket. Every valid pocket belongs to
// exactly one zone.
func ZoneOf(position int) (ZoneID, error) {
	if !Valid(position) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPosition, position)
	}
	return zoneOf[position], nil
}
