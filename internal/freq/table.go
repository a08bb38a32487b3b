// Package freq provides a decaying weighted-frequency table: a keyed counter
// whose entries are multiplicatively attenuated on every observation cycle so
// that recent history dominates old history.
package freq

import (
	"cmp"
	"errors"
	"fmt"
	"sort"
)

// ErrEmptyTable is returned when a probability is requested against a table
// with zero total mass.
var ErrEmptyTable = errors.New("frequency table is empty")

// Defaults match the tracker's data-collection protocol: weights lose 10%
// per observed spin and entries are dropped once effectively zero.
const (
	DefaultDecayFactor  = 0.9
	DefaultPruneEpsilon = 1e-6
)

// Entry is one ranked result from TopN.
type Entry[K cmp.Ordered] struct {
	Key    K
	Weight float64
}

// Table is a weighted counter over keys of type K. Weights are non-negative
// and finite: DecayAll evicts anything that falls below the prune epsilon.
// The zero value is not usable; construct with New.
type Table[K cmp.Ordered] struct {
	entries      map[K]float64
	decayFactor  float64
	pruneEpsilon float64
}

// New creates an empty table. decayFactor must lie in (0, 1] and
// pruneEpsilon must be positive; out-of-range values fall back to the
// defaults.
func New[K cmp.Ordered](decayFactor, pruneEpsilon float64) *Table[K] {
	if decayFactor <= 0 || decayFactor > 1 {
		decayFactor = DefaultDecayFactor
	}
	if pruneEpsilon <= 0 {
		pruneEpsilon = DefaultPruneEpsilon
	}
	return &Table[K]{
		entries:      make(map[K]float64),
		decayFactor:  decayFactor,
		pruneEpsilon: pruneEpsilon,
	}
}

// DecayAll multiplies every weight by the decay factor and evicts entries
// below the prune epsilon. Call once per observation cycle, before folding
// the new observation in, so prior evidence ages exactly one step per spin.
func (t *Table[K]) DecayAll() {
	for key, w := range t.entries {
		w *= t.decayFactor
		if w < t.pruneEpsilon {
			delete(t.entries, key)
			continue
		}
		t.entries[key] = w
	}
}

// Increment adds amount to the key's weight, creating the entry at amount if
// absent.
func (t *Table[K]) Increment(key K, amount float64) {
	t.entries[key] += amount
}

// Len returns the number of live entries.
func (t *Table[K]) Len() int {
	return len(t.entries)
}

// Weight returns the current weight of key, zero if absent.
func (t *Table[K]) Weight(key K) float64 {
	return t.entries[key]
}

// TotalMass sums the live weights. It is recomputed from the entries rather
// than carried as an accumulator, so it cannot drift from repeated decay.
func (t *Table[K]) TotalMass() float64 {
	total := 0.0
	for _, w := range t.entries {
		total += w
	}
	return total
}

// ProbabilityOf returns the key's share of the total mass.
func (t *Table[K]) ProbabilityOf(key K) (float64, error) {
	total := t.TotalMass()
	if total == 0 {
		return 0, ErrEmptyTable
	}
	return t.entries[key] / total, nil
}

// TopN returns up to n entries ordered by descending weight. Ties are broken
// by ascending key, so identical histories always rank identically.
func (t *Table[K]) TopN(n int) []Entry[K] {
	if n <= 0 {
		return nil
	}
	ranked := make([]Entry[K], 0, len(t.entries))
	for key, w := range t.entries {
		ranked = append(ranked, Entry[K]{Key: key, Weight: w})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Weight != ranked[j].Weight {
			return ranked[i].Weight > ranked[j].Weight
		}
		return ranked[i].Key < ranked[j].Key
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// All returns every entry, ranked the same way as TopN.
func (t *Table[K]) All() []Entry[K] {
	return t.TopN(len(t.entries))
}

// String summarizes the table for log lines.
func (t *Table[K]) String() string {
	return fmt.Sprintf("freq.Table{entries=%d mass=%.4f decay=%g}", len(t.entries), t.TotalMass(), t.decayFactor)
}
