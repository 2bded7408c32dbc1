package flightsim

import (
	"github.com/san-kum/flowctl/internal/dynamo"
	"github.com/san-kum/flowctl/internal/flight"
	"github.com/san-kum/flowctl/internal/mixer"
)

// backend holds the last delivered motor command until the next one.
type backend struct {
	model  *mixer.Model
	motors flight.ActuatorCommand
	u      dynamo.Control
	calls  int
}

func newBackend(model *mixer.Model) *backend {
	return &backend{model: model, u: make(dynamo.Control, 4)}
}

func (b *backend) SetMotors(cmd flight.ActuatorCommand) {
	b.motors = cmd
	w := b.model.Wrench(cmd)
	copy(b.u, w[:])
	b.calls++
}

// control is the plant input for the held command.
func (b *backend) control() dynamo.Control {
	return b.u
}
