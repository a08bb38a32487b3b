package predict

import "github.com/MJE43/roulette-edge-go/internal/wheel"

// DistanceCandidate is one ranked next-pocket candidate, reconstructed from
// a frequent inter-spin distance projected from the last recorded pocket.
type DistanceCandidate struct {
	Position    int     `json:"position"`
	Distance    int     `json:"distance"`
	Probability float64 `json:"probability"`
}

// NumberRank is a pocket ranked by decayed hit frequency.
type NumberRank struct {
	Position    int     `json:"position"`
	Weight      float64 `json:"weight"`
	Probability float64 `json:"probability"`
}

// ColorRank is a color's share of the decayed color mass.
type ColorRank struct {
	Color       wheel.Color `json:"color"`
	Probability float64     `json:"probability"`
}

// ZoneRank is a wheel zone ranked by decayed hit frequency.
type ZoneRank struct {
	Zone        wheel.ZoneID `json:"zone"`
	Weight      float64      `json:"weight"`
	Probability float64      `json:"probability"`
}

// DealerZones carries the per-dealer zone ranking for a requested dealer.
// HasData is false when the dealer has no surviving zone observations; the
// presentation layer renders that as an explicit no-data entry rather than
// an error.
type DealerZones struct {
	Dealer  string     `json:"dealer"`
	HasData bool       `json:"has_data"`
	Zones   []ZoneRank `json:"zones,omitempty"`
}

// Report is the structured result of a prediction query: the resolved
// direction and index of the upcoming spin plus one ranked list per tracked
// dimension. It is a plain value, decoupled from any text rendering, and is
// never mutated by the predictor after assembly.
type Report struct {
	SpinIndex  int                 `json:"spin_index"`
	Direction  wheel.Direction     `json:"direction"`
	Candidates []DistanceCandidate `json:"candidates"`
	HotNumbers []NumberRank        `json:"hot_numbers"`
	Colors     []ColorRank         `json:"colors"`
	HotZones   []ZoneRank          `json:"hot_zones"`
	ByDealer   *DealerZones        `json:"by_dealer,omitempty"`
}
