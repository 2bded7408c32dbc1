package metrics

import (
	"math"

	"github.com/san-kum/flowctl/internal/dynamo"
	"github.com/san-kum/flowctl/internal/plant"
)

// Tracking is the RMS distance between the true position and the setpoint
// while the z-axis is enabled.
type Tracking struct {
	sumSq   float64
	samples int
}

func NewTracking() *Tracking { return &Tracking{} }

func (m *Tracking) Name() string { return "tracking_rms" }

func (m *Tracking) Observe(s *dynamo.Snapshot) {
	if !s.Setpoint.Enabled() {
		return
	}
	dx := s.Truth[plant.X] - float64(s.Setpoint.X)
	dy := s.Truth[plant.Y] - float64(s.Setpoint.Y)
	dz := s.Truth[plant.Z] - float64(s.Setpoint.Z)
	m.sumSq += dx*dx + dy*dy + dz*dz
	m.samples++
}

func (m *Tracking) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return math.Sqrt(m.sumSq / float64(m.samples))
}

func (m *Tracking) Reset() {
	m.sumSq = 0
	m.samples = 0
}
