package metrics

import (
	"math"

	"github.com/san-kum/flowctl/internal/control"
	"github.com/san-kum/flowctl/internal/dynamo"
)

// ControlEffort is the mean absolute deviation of the commanded thrust from
// hover plus the commanded torques, over executed ticks with the z-axis
// enabled.
type ControlEffort struct {
	hover   float64
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{hover: float64(control.HoverThrust)}
}

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(s *dynamo.Snapshot) {
	if !s.Executed || !s.Setpoint.Enabled() {
		return
	}
	cmd := s.Command
	c.sum += math.Abs(float64(cmd.Fz)-c.hover) +
		math.Abs(float64(cmd.TauX)) + math.Abs(float64(cmd.TauY)) + math.Abs(float64(cmd.TauZ))
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
