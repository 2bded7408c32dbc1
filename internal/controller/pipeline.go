package controller

import (
	"github.com/san-kum/flowctl/internal/control"
	"github.com/san-kum/flowctl/internal/estimator"
	"github.com/san-kum/flowctl/internal/flight"
	"github.com/san-kum/flowctl/internal/mixer"
	"github.com/san-kum/flowctl/internal/sensors"
)

// Actuator receives the four motor commands once per executed tick.
type Actuator interface {
	SetMotors(cmd flight.ActuatorCommand)
}

// ActuatorFunc adapts a function to Actuator.
type ActuatorFunc func(flight.ActuatorCommand)

func (f ActuatorFunc) SetMotors(cmd flight.ActuatorCommand) { f(cmd) }

// Inputs are the per-tick values handed over by the scheduler.
type Inputs struct {
	Tick     uint32
	IMU      flight.RawIMU
	External flight.ExternalEstimate
	Setpoint flight.Setpoint
}

// Frame is everything computed in one executed tick.
type Frame struct {
	Setpoint flight.Setpoint
	Sample   flight.SensorSample
	Meas     estimator.Measurements
	Mode     estimator.Mode
	State    flight.StateVector
	Command  flight.ControlCommand
	Motors   flight.ActuatorCommand
}

// State is the whole controller.
type State struct {
	Sensors   *sensors.Cache
	Estimator *estimator.Estimator
	Law       *control.Law
	Mixer     *mixer.Mixer
	Log       *Log

	last Frame
}

// New returns a controller with the hover law and the quad mixer.
func New() *State {
	return &State{
		Sensors:   sensors.New(),
		Estimator: estimator.New(),
		Law:       control.Default(),
		Mixer:     mixer.Default(),
		Log:       NewLog(),
	}
}

// Reset restores s to its power-on condition. It must not run concurrently
// with Step.
func (s *State) Reset() {
	s.Sensors.Reset()
	s.Estimator.Clear()
	s.last = Frame{}
}

// Params returns the runtime parameter group of s.
func (s *State) Params() *Params {
	return &Params{flags: &s.Estimator.Flags}
}

// Last returns the frame of the most recent executed tick.
func (s *State) Last() Frame { return s.last }

// ShouldExecute reports whether the pipeline runs on this base tick.
func ShouldExecute(tick uint32) bool {
	return tick%(flight.RateMainLoop/flight.RateAttitude) == 0
}

// Step runs the pipeline if tick is due and reports whether it did. When it
// runs, act receives exactly one command; a disabled z-axis delivers zeros.
func Step(s *State, in Inputs, act Actuator) bool {
	if !ShouldExecute(in.Tick) {
		return false
	}

	f := Frame{Setpoint: in.Setpoint, Sample: s.Sensors.Snapshot()}
	f.Meas = estimator.Measure(in.IMU, f.Sample)
	f.Mode = s.Estimator.Step(f.Meas, in.External)
	f.State = s.Estimator.State()

	if f.Setpoint.Enabled() {
		f.Command = s.Law.Compute(f.State, f.Setpoint)
		f.Motors = s.Mixer.Gate(f.Command, f.Setpoint)
	}
	act.SetMotors(f.Motors)

	s.last = f
	if s.Log != nil {
		s.Log.Publish(&f)
	}
	return true
}
