// Package predict owns the spin history and the decayed frequency tables
// tracking it, and turns them into ranked predictions for the next outcome.
package predict

import (
	"fmt"

	"github.com/MJE43/roulette-edge-go/internal/freq"
	"github.com/MJE43/roulette-edge-go/internal/wheel"
)

// Defaults for the ranked lists and the history cap, from the tracker's
// collection protocol.
const (
	DefaultTopN       = 15
	DefaultMaxHistory = 200

	topNumbers = 10
	topZones   = 5
)

// SpinRecord is one observed outcome, immutable once recorded. Dealer is
// empty when the spin was logged without an operator.
type SpinRecord struct {
	Position int    `json:"position"`
	Dealer   string `json:"dealer,omitempty"`
}

// Options configures a Predictor. Zero fields fall back to defaults.
type Options struct {
	DecayFactor  float64
	PruneEpsilon float64
	MaxHistory   int
}

// Predictor tracks a single statistical session: the spin history ring and
// one decayed frequency table per dimension (distance per direction, number,
// color, zone, zone per dealer). It is not safe for concurrent use; callers
// needing that wrap it in a single exclusive lock.
type Predictor struct {
	opts Options

	history []SpinRecord // ring, capped at opts.MaxHistory
	count   int          // total spins ever recorded

	distance map[wheel.Direction]*freq.Table[int]
	numbers  *freq.Table[int]
	colors   *freq.Table[wheel.Color]
	zones    *freq.Table[wheel.ZoneID]
	byDealer map[string]*freq.Table[wheel.ZoneID]
}

// New creates an empty predictor. Sessions are independent: no state is
// shared between instances.
func New(opts Options) *Predictor {
	if opts.DecayFactor == 0 {
		opts.DecayFactor = freq.DefaultDecayFactor
	}
	if opts.PruneEpsilon == 0 {
		opts.PruneEpsilon = freq.DefaultPruneEpsilon
	}
	if opts.MaxHistory <= 0 {
		opts.MaxHistory = DefaultMaxHistory
	}
	p := &Predictor{
		opts: opts,
		distance: map[wheel.Direction]*freq.Table[int]{
			wheel.Clockwise:     freq.New[int](opts.DecayFactor, opts.PruneEpsilon),
			wheel.Anticlockwise: freq.New[int](opts.DecayFactor, opts.PruneEpsilon),
		},
		numbers:  freq.New[int](opts.DecayFactor, opts.PruneEpsilon),
		colors:   freq.New[wheel.Color](opts.DecayFactor, opts.PruneEpsilon),
		zones:    freq.New[wheel.ZoneID](opts.DecayFactor, opts.PruneEpsilon),
		byDealer: make(map[string]*freq.Table[wheel.ZoneID]),
	}
	return p
}

// SpinCount returns the total number of spins ever recorded, including any
// that have rotated out of the bounded history ring.
func (p *Predictor) SpinCount() int {
	return p.count
}

// History returns a copy of the retained spin records, oldest first.
func (p *Predictor) History() []SpinRecord {
	out := make([]SpinRecord, len(p.history))
	copy(out, p.history)
	return out
}

// decayAll ages every owned table by one step. All tables share the decay
// factor so no dimension can drift a step from the others.
func (p *Predictor) decayAll() {
	for _, table := range p.distance {
		table.DecayAll()
	}
	p.numbers.DecayAll()
	p.colors.DecayAll()
	p.zones.DecayAll()
	// Dealer tables are never dropped once created; an emptied table just
	// ranks as no-data until that dealer is seen again.
	for _, table := range p.byDealer {
		table.DecayAll()
	}
}

// AddSpin records one observed outcome. Every owned table is decayed exactly
// once, then the new observation is folded in undecayed: number, color and
// zone always, the dealer's zone table when a dealer is named, and the
// directional distance from the previous spin once one exists.
func (p *Predictor) AddSpin(position int, dealer string) error {
	if !wheel.Valid(position) {
		return fmt.Errorf("%w: %d", ErrInvalidPosition, position)
	}

	p.decayAll()

	spinIndex := p.count + 1
	var prev *SpinRecord
	if len(p.history) > 0 {
		prev = &p.history[len(p.history)-1]
	}

	p.history = append(p.history, SpinRecord{Position: position, Dealer: dealer})
	if len(p.history) > p.opts.MaxHistory {
		p.history = p.history[1:]
	}
	p.count = spinIndex

	p.numbers.Increment(position, 1)

	color, _ := wheel.ColorOf(position)
	p.colors.Increment(color, 1)

	zone, _ := wheel.ZoneOf(position)
	p.zones.Increment(zone, 1)
	if dealer != "" {
		table, ok := p.byDealer[dealer]
		if !ok {
			table = freq.New[wheel.ZoneID](p.opts.DecayFactor, p.opts.PruneEpsilon)
			p.byDealer[dealer] = table
		}
		table.Increment(zone, 1)
	}

	if prev != nil {
		dir := wheel.DirectionForSpin(spinIndex)
		dist, err := wheel.Distance(dir, prev.Position, position)
		if err != nil {
			return err
		}
		p.distance[dir].Increment(dist, 1)
	}
	return nil
}

// TopN assembles a prediction report for the upcoming spin. n <= 0 selects
// the default candidate count. The call is read-only: no table is mutated,
// and repeated calls with identical arguments return identical reports.
func (p *Predictor) TopN(n int, dealer string) (*Report, error) {
	if n <= 0 {
		n = DefaultTopN
	}
	if p.count == 0 {
		return nil, ErrNoHistory
	}

	spinIndex := p.count + 1
	dir := wheel.DirectionForSpin(spinIndex)
	distTable := p.distance[dir]
	if distTable.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoDistanceData, dir)
	}

	report := &Report{
		SpinIndex: spinIndex,
		Direction: dir,
	}

	distMass := distTable.TotalMass()
	last := p.history[len(p.history)-1].Position
	for _, entry := range distTable.TopN(n) {
		candidate, err := wheel.Project(dir, last, entry.Key)
		if err != nil {
			return nil, err
		}
		report.Candidates = append(report.Candidates, DistanceCandidate{
			Position:    candidate,
			Distance:    entry.Key,
			Probability: entry.Weight / distMass,
		})
	}

	numberMass := p.numbers.TotalMass()
	for _, entry := range p.numbers.TopN(topNumbers) {
		report.HotNumbers = append(report.HotNumbers, NumberRank{
			Position:    entry.Key,
			Weight:      entry.Weight,
			Probability: entry.Weight / numberMass,
		})
	}

	colorMass := p.colors.TotalMass()
	for _, entry := range p.colors.All() {
		report.Colors = append(report.Colors, ColorRank{
			Color:       entry.Key,
			Probability: entry.Weight / colorMass,
		})
	}

	zoneMass := p.zones.TotalMass()
	for _, entry := range p.zones.TopN(topZones) {
		report.HotZones = append(report.HotZones, ZoneRank{
			Zone:        entry.Key,
			Weight:      entry.Weight,
			Probability: entry.Weight / zoneMass,
		})
	}

	if dealer != "" {
		report.ByDealer = p.dealerZones(dealer)
	}
	return report, nil
}

// dealerZones ranks the named dealer's private zone table, normalized over
// that table's own mass, separately from the global zone total. An unseen or
// fully decayed dealer yields HasData=false instead of an error.
func (p *Predictor) dealerZones(dealer string) *DealerZones {
	out := &DealerZones{Dealer: dealer}
	table, ok := p.byDealer[dealer]
	if !ok || table.Len() == 0 {
		return out
	}
	mass := table.TotalMass()
	for _, entry := range table.TopN(topZones) {
		out.Zones = append(out.Zones, ZoneRank{
			Zone:        entry.Key,
			Weight:      entry.Weight,
			Probability: entry.Weight / mass,
		})
	}
	out.HasData = true
	return out
}
