// Package integrators implements fixed-step ODE integrators for the plant.
package integrators

import (
	"errors"
	"fmt"

	"github.com/san-kum/flowctl/internal/dynamo"
)

// ErrUnknownIntegrator is returned by ByName.
var ErrUnknownIntegrator = errors.New("integrators: unknown integrator")

// Names lists the integrators ByName accepts.
var Names = []string{"euler", "rk4"}

// ByName returns a fresh integrator.
func ByName(name string) (dynamo.Integrator, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4", "":
		return NewRK4(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownIntegrator, name)
}
