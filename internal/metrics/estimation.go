package metrics

import (
	"math"

	"github.com/san-kum/flowctl/internal/dynamo"
	"github.com/san-kum/flowctl/internal/plant"
)

// EstimationError is the RMS error of the estimated height, roll and pitch
// against the plant, over executed ticks. Horizontal position is left out:
// the observer has no absolute measurement of it.
type EstimationError struct {
	sumSq   float64
	samples int
}

func NewEstimationError() *EstimationError { return &EstimationError{} }

func (m *EstimationError) Name() string { return "estimation_rms" }

func (m *EstimationError) Observe(s *dynamo.Snapshot) {
	if !s.Executed {
		return
	}
	ez := float64(s.Estimate.OZ) - s.Truth[plant.Z]
	eroll := float64(s.Estimate.Phi) - s.Truth[plant.Roll]
	epitch := float64(s.Estimate.Theta) - s.Truth[plant.Pitch]
	m.sumSq += ez*ez + eroll*eroll + epitch*epitch
	m.samples++
}

func (m *EstimationError) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return math.Sqrt(m.sumSq / float64(m.samples))
}

func (m *EstimationError) Reset() {
	m.sumSq = 0
	m.samples = 0
}
