package dynamo

import (
	"math"

	"github.com/san-kum/flowctl/internal/flight"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every component is finite.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

type Control []float64

type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

type Integrator interface {
	Step(sys System, x State, u Control, t, dt float64) State
}

// Snapshot is what the harness knows after one base tick.
type Snapshot struct {
	Time     float64
	Tick     uint32
	Executed bool // the pipeline ran this tick

	Truth    State // plant state
	Estimate flight.StateVector
	Setpoint flight.Setpoint
	Command  flight.ControlCommand
	Motors   flight.ActuatorCommand
}

type Metric interface {
	Name() string
	Observe(s *Snapshot)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s *Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s *Snapshot)

func (f ObserverFunc) OnStep(s *Snapshot) { f(s) }

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
