package predict_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/MJE43/roulette-edge-go/internal/predict"
	"github.com/MJE43/roulette-edge-go/internal/wheel"
)

func mustAdd(t *testing.T, p *predict.Predictor, position int, dealer string) {
	t.Helper()
	if err := p.AddSpin(position, dealer); err != nil {
		t.Fatalf("AddSpin(%d, %q) failed: %v", position, dealer, err)
	}
}

func TestTopNRequiresHistory(t *testing.T) {
	p := predict.New(predict.Options{})
	if _, err := p.TopN(15, ""); !errors.Is(err, predict.ErrNoHistory) {
		t.Fatalf("TopN on empty predictor = %v, want ErrNoHistory", err)
	}
}

func TestAddSpinRejectsInvalidPosition(t *testing.T) {
	p := predict.New(predict.Options{})
	for _, pos := range []int{-1, 37, 99} {
		if err := p.AddSpin(pos, ""); !errors.Is(err, predict.ErrInvalidPosition) {
			t.Errorf("AddSpin(%d) = %v, want ErrInvalidPosition", pos, err)
		}
	}
	if p.SpinCount() != 0 {
		t.Errorf("rejected spins must not be recorded, count = %d", p.SpinCount())
	}
}

// With spins [0, 32] only the anticlockwise table has a sample (spin #2 is
// even), so predicting spin #3 (clockwise) must fail.
func TestMissingDirectionData(t *testing.T) {
	p := predict.New(predict.Options{DecayFactor: 1.0})
	mustAdd(t, p, 0, "")
	mustAdd(t, p, 32, "")

	if _, err := p.TopN(15, ""); !errors.Is(err, predict.ErrNoDistanceData) {
		t.Fatalf("TopN = %v, want ErrNoDistanceData", err)
	}
}

// With spins [0, 32, 15] the prediction for spin #4 runs anticlockwise and
// sees exactly one sample: the 36-step anticlockwise distance from 0 to 32.
// Projected 36 steps anticlockwise from 15 that reconstructs pocket 19.
func TestSingleCandidateScenario(t *testing.T) {
	p := predict.New(predict.Options{DecayFactor: 1.0})
	mustAdd(t, p, 0, "")
	mustAdd(t, p, 32, "")
	mustAdd(t, p, 15, "")

	report, err := p.TopN(15, "")
	if err != nil {
		t.Fatalf("TopN failed: %v", err)
	}

	if report.SpinIndex != 4 {
		t.Errorf("SpinIndex = %d, want 4", report.SpinIndex)
	}
	if report.Direction != wheel.Anticlockwise {
		t.Errorf("Direction = %s, want anticlockwise", report.Direction)
	}
	if len(report.Candidates) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(report.Candidates), report.Candidates)
	}
	c := report.Candidates[0]
	if c.Distance != 36 || c.Position != 19 {
		t.Errorf("candidate = pocket %d at distance %d, want pocket 19 at distance 36", c.Position, c.Distance)
	}
	if math.Abs(c.Probability-1.0) > 1e-12 {
		t.Errorf("candidate probability = %f, want 1.0", c.Probability)
	}

	if len(report.HotNumbers) != 3 {
		t.Errorf("got %d hot numbers, want 3", len(report.HotNumbers))
	}
	for _, n := range report.HotNumbers {
		if math.Abs(n.Probability-1.0/3.0) > 1e-12 {
			t.Errorf("number %d probability = %f, want 1/3", n.Position, n.Probability)
		}
	}

	// 0 green, 32 red, 15 black: one of each.
	if len(report.Colors) != 3 {
		t.Errorf("got %d colors, want 3", len(report.Colors))
	}

	// All three pockets sit in zone 1.
	if len(report.HotZones) != 1 || report.HotZones[0].Zone != 1 {
		t.Fatalf("hot zones = %+v, want only zone 1", report.HotZones)
	}
	if math.Abs(report.HotZones[0].Probability-1.0) > 1e-12 {
		t.Errorf("zone probability = %f, want 1.0", report.HotZones[0].Probability)
	}
}

// Recording a pocket once and then six unrelated spins leaves its weight at
// decay^6: each later spin ages all prior evidence exactly one step.
func TestWeightedCountLaw(t *testing.T) {
	p := predict.New(predict.Options{DecayFactor: 0.9})
	mustAdd(t, p, 17, "")
	for _, pos := range []int{4, 21, 2, 25, 34, 6} {
		mustAdd(t, p, pos, "")
	}

	report, err := p.TopN(15, "")
	if err != nil {
		t.Fatalf("TopN failed: %v", err)
	}

	want := math.Pow(0.9, 6)
	found := false
	for _, n := range report.HotNumbers {
		if n.Position == 17 {
			found = true
			if math.Abs(n.Weight-want) > 1e-9 {
				t.Errorf("weight of 17 after six decays = %f, want %f", n.Weight, want)
			}
		}
	}
	if !found {
		t.Fatal("pocket 17 missing from hot numbers")
	}
}

func TestDealerIsolation(t *testing.T) {
	p := predict.New(predict.Options{DecayFactor: 1.0})
	mustAdd(t, p, 0, "alice") // zone 1
	mustAdd(t, p, 3, "bob")   // zone 8
	mustAdd(t, p, 15, "")     // gives both parities distance data

	tests := []struct {
		dealer   string
		hasData  bool
		wantZone wheel.ZoneID
	}{
		{"alice", true, 1},
		{"bob", true, 8},
		{"carol", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.dealer, func(t *testing.T) {
			report, err := p.TopN(15, tt.dealer)
			if err != nil {
				t.Fatalf("TopN failed: %v", err)
			}
			bd := report.ByDealer
			if bd == nil || bd.Dealer != tt.dealer {
				t.Fatalf("ByDealer = %+v, want entry for %q", bd, tt.dealer)
			}
			if bd.HasData != tt.hasData {
				t.Fatalf("HasData = %t, want %t", bd.HasData, tt.hasData)
			}
			if !tt.hasData {
				return
			}
			if len(bd.Zones) != 1 || bd.Zones[0].Zone != tt.wantZone {
				t.Errorf("zones = %+v, want only zone %d", bd.Zones, tt.wantZone)
			}
			if math.Abs(bd.Zones[0].Probability-1.0) > 1e-12 {
				t.Errorf("dealer zone probability = %f, want 1.0 over the dealer's own mass", bd.Zones[0].Probability)
			}
		})
	}

	report, err := p.TopN(15, "")
	if err != nil {
		t.Fatalf("TopN failed: %v", err)
	}
	if report.ByDealer != nil {
		t.Errorf("prediction without a dealer must not carry dealer data, got %+v", report.ByDealer)
	}
}

func TestPredictionIsReadOnly(t *testing.T) {
	p := predict.New(predict.Options{})
	for _, pos := range []int{0, 32, 15, 19, 4, 21} {
		mustAdd(t, p, pos, "dealer1")
	}

	first, err := p.TopN(15, "dealer1")
	if err != nil {
		t.Fatalf("first TopN failed: %v", err)
	}
	second, err := p.TopN(15, "dealer1")
	if err != nil {
		t.Fatalf("second TopN failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("consecutive reads differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestHistoryRingCap(t *testing.T) {
	p := predict.New(predict.Options{MaxHistory: 5})
	for _, pos := range []int{0, 32, 15, 19, 4, 21, 2, 25} {
		mustAdd(t, p, pos, "")
	}

	if p.SpinCount() != 8 {
		t.Errorf("SpinCount = %d, want 8", p.SpinCount())
	}
	h := p.History()
	if len(h) != 5 {
		t.Fatalf("retained history length = %d, want 5", len(h))
	}
	if h[0].Position != 19 || h[4].Position != 25 {
		t.Errorf("ring retained wrong window: %+v", h)
	}
}

func TestDefaultCandidateCount(t *testing.T) {
	p := predict.New(predict.Options{})
	positions := []int{0, 32, 15, 19, 4, 21, 2, 25, 17, 34, 6, 27, 13, 36, 11, 30, 8, 23, 10, 5}
	for _, pos := range positions {
		mustAdd(t, p, pos, "")
	}

	report, err := p.TopN(0, "")
	if err != nil {
		t.Fatalf("TopN failed: %v", err)
	}
	if len(report.Candidates) == 0 || len(report.Candidates) > predict.DefaultTopN {
		t.Errorf("got %d candidates, want between 1 and %d", len(report.Candidates), predict.DefaultTopN)
	}
	if len(report.HotNumbers) > 10 {
		t.Errorf("got %d hot numbers, want at most 10", len(report.HotNumbers))
	}
}
