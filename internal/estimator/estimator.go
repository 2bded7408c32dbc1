package estimator

import "github.com/san-kum/flowctl/internal/flight"

// Measurements are the sensor values latched at the start of a tick.
type Measurements struct {
	WX, WY, WZ float32 // rad/s
	AZ         float32 // m/s²
	NX, NY     float32 // flow
	R          float32 // range, m
}

// Measure latches the IMU and the cached sensor sample.
func Measure(imu flight.RawIMU, s flight.SensorSample) Measurements {
	return Measurements{
		WX: imu.GyroX,
		WY: imu.GyroY,
		WZ: imu.GyroZ,
		AZ: imu.AccelZ,
		NX: s.FlowDX,
		NY: s.FlowDY,
		R:  s.RangeDistance,
	}
}

// Estimator owns the persistent StateVector.
type Estimator struct {
	Flags Flags
	state flight.StateVector
}

func New() *Estimator {
	return &Estimator{}
}

// State returns a copy of the current estimate.
func (e *Estimator) State() flight.StateVector { return e.state }

// Reset zeroes position, attitude and velocity. Angular rates are left as is.
func (e *Estimator) Reset() {
	e.state = flight.StateVector{WX: e.state.WX, WY: e.state.WY, WZ: e.state.WZ}
}

// Clear returns the estimator to its power-on condition: zero state, pass-through
// mode and no pending reset.
func (e *Estimator) Clear() {
	e.state = flight.StateVector{}
	e.Flags.SetUseObserver(false)
	e.Flags.TakeResetRequest()
}

// Select returns the mode chosen by the use_observer flag.
func (e *Estimator) Select(ext flight.ExternalEstimate) Mode {
	if e.Flags.UseObserver() {
		return Observe()
	}
	return PassThrough(ext)
}

// Step runs one estimator tick: angular rates are taken from the gyro, a
// pending reset is consumed and applied, then the selected strategy updates
// the state. It returns the mode that ran.
func (e *Estimator) Step(m Measurements, ext flight.ExternalEstimate) Mode {
	e.state.WX, e.state.WY, e.state.WZ = m.WX, m.WY, m.WZ

	if e.Flags.TakeResetRequest() {
		e.Reset()
	}

	mode := e.Select(ext)
	e.Apply(mode, m)
	return mode
}

// Apply runs a single strategy against the current state.
func (e *Estimator) Apply(mode Mode, m Measurements) {
	if mode.IsObserver() {
		observe(&e.state, m)
		return
	}
	passThrough(&e.state, mode.external)
}
