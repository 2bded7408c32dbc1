package metrics

import (
	"math"

	"github.com/san-kum/flowctl/internal/dynamo"
	"github.com/san-kum/flowctl/internal/plant"
)

// DefaultTiltLimit is the roll or pitch, in radians, beyond which a tick
// counts as unstable.
const DefaultTiltLimit = 0.5

// Stability is the fraction of ticks with roll and pitch inside the limit.
type Stability struct {
	limit      float64
	violations int
	samples    int
}

func NewStability(limit float64) *Stability {
	return &Stability{limit: limit}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(snap *dynamo.Snapshot) {
	s.samples++
	if math.Abs(snap.Truth[plant.Roll]) > s.limit || math.Abs(snap.Truth[plant.Pitch]) > s.limit {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1
	}
	return 1 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
