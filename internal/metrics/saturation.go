package metrics

import (
	"github.com/san-kum/flowctl/internal/dynamo"
	"github.com/san-kum/flowctl/internal/flight"
)

// Saturation is the fraction of enabled executed ticks in which at least one
// motor sat at a bound.
type Saturation struct {
	hits    int
	samples int
}

func NewSaturation() *Saturation { return &Saturation{} }

func (m *Saturation) Name() string { return "saturation" }

func (m *Saturation) Observe(s *dynamo.Snapshot) {
	if !s.Executed || !s.Setpoint.Enabled() {
		return
	}
	m.samples++
	for _, v := range s.Motors {
		if v == 0 || v == flight.MotorMax {
			m.hits++
			return
		}
	}
}

func (m *Saturation) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.hits) / float64(m.samples)
}

func (m *Saturation) Reset() {
	m.hits = 0
	m.samples = 0
}
