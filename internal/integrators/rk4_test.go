package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/flowctl/internal/dynamo"
)

// oscillator is x” = -x.
type oscillator struct{}

func (oscillator) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (oscillator) StateDim() int   { return 2 }
func (oscillator) ControlDim() int { return 0 }

// forced is v' = u[0].
type forced struct{}

func (forced) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{u[0]}
}

func (forced) StateDim() int   { return 1 }
func (forced) ControlDim() int { return 1 }

func integrate(integ dynamo.Integrator, sys dynamo.System, x dynamo.State, u dynamo.Control, dt float64, steps int) dynamo.State {
	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, u, float64(i)*dt, dt)
	}
	return x
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name string
		tol  float64
	}{
		{"rk4", 1e-8},
		{"euler", 1e-2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integ, err := ByName(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			x := integrate(integ, oscillator{}, dynamo.State{1, 0}, nil, 0.001, 1000)
			if math.Abs(x[0]-math.Cos(1)) > tt.tol || math.Abs(x[1]+math.Sin(1)) > tt.tol {
				t.Errorf("x(1) = %v, want (%.6f, %.6f)", x, math.Cos(1), -math.Sin(1))
			}
		})
	}
}

func TestConstantForcing(t *testing.T) {
	for _, name := range Names {
		integ, _ := ByName(name)
		x := integrate(integ, forced{}, dynamo.State{0}, dynamo.Control{2}, 0.01, 100)
		if math.Abs(x[0]-2) > 1e-9 {
			t.Errorf("%s: v(1) = %v, want 2", name, x[0])
		}
	}
}

func TestStepDoesNotAliasInput(t *testing.T) {
	integ := NewRK4()
	x := dynamo.State{1, 0}
	next := integ.Step(oscillator{}, x, nil, 0, 0.1)
	if x[0] != 1 || x[1] != 0 {
		t.Errorf("input modified: %v", x)
	}
	next[0] = 42
	again := integ.Step(oscillator{}, x, nil, 0, 0.1)
	if again[0] == 42 {
		t.Error("result shares storage with the integrator")
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, err := ByName("verlet"); !errors.Is(err, ErrUnknownIntegrator) {
		t.Errorf("ByName(verlet) error = %v", err)
	}
}
