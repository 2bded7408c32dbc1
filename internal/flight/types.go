package flight

// StateDim is the number of scalars in a StateVector.
const StateDim = 12

// Indices into StateVector.Array.
const (
	IdxOX = iota
	IdxOY
	IdxOZ
	IdxPsi
	IdxTheta
	IdxPhi
	IdxVX
	IdxVY
	IdxVZ
	IdxWX
	IdxWY
	IdxWZ
)

// SensorSample is the latest value delivered by each asynchronous driver.
type SensorSample struct {
	RangeDistance float32 // m
	RangeCount    uint16
	FlowDX        float32 // accumulated pixels
	FlowDY        float32
	FlowCount     uint16
}

// RawIMU is supplied fresh every tick and never cached.
type RawIMU struct {
	GyroX, GyroY, GyroZ float32 // rad/s, body frame
	AccelZ              float32 // m/s², body z
}

// StateVector is the estimator's full state. Attitude is ZYX Euler:
// yaw Psi, pitch Theta, roll Phi, all radians. Velocity is expressed in the
// body-aligned working frame.
type StateVector struct {
	OX, OY, OZ      float32
	Psi, Theta, Phi float32
	VX, VY, VZ      float32
	WX, WY, WZ      float32
}

// Array returns the state in Idx* order.
func (s StateVector) Array() [StateDim]float32 {
	return [StateDim]float32{
		s.OX, s.OY, s.OZ,
		s.Psi, s.Theta, s.Phi,
		s.VX, s.VY, s.VZ,
		s.WX, s.WY, s.WZ,
	}
}

// FromArray is the inverse of Array.
func FromArray(a [StateDim]float32) StateVector {
	return StateVector{
		OX: a[IdxOX], OY: a[IdxOY], OZ: a[IdxOZ],
		Psi: a[IdxPsi], Theta: a[IdxTheta], Phi: a[IdxPhi],
		VX: a[IdxVX], VY: a[IdxVY], VZ: a[IdxVZ],
		WX: a[IdxWX], WY: a[IdxWY], WZ: a[IdxWZ],
	}
}

// AxisMode is how a setpoint axis is commanded.
type AxisMode uint8

const (
	ModeDisable AxisMode = iota
	ModeAbsolute
	ModeVelocity
)

func (m AxisMode) String() string {
	switch m {
	case ModeDisable:
		return "disable"
	case ModeAbsolute:
		return "absolute"
	case ModeVelocity:
		return "velocity"
	default:
		return "unknown"
	}
}

// Setpoint is the externally supplied desired position. ModeZ set to
// ModeDisable forces all motors off.
type Setpoint struct {
	X, Y, Z float32
	ModeZ   AxisMode
}

// Enabled reports whether the z-axis is commanded.
func (s Setpoint) Enabled() bool { return s.ModeZ != ModeDisable }

// ExternalEstimate is a pose and velocity computed outside this core, used
// by the pass-through estimator. Attitude follows the external convention,
// where pitch has the opposite sign to StateVector.Theta. Angles are radians;
// velocity is in the inertial frame.
type ExternalEstimate struct {
	X, Y, Z          float32
	Roll, Pitch, Yaw float32
	VX, VY, VZ       float32
}

// ControlCommand is recomputed every tick.
type ControlCommand struct {
	TauX, TauY, TauZ float32 // N·m
	Fz               float32 // N
}

// ActuatorCommand holds the four motor values handed to the actuation backend.
type ActuatorCommand [4]uint16

// Zero reports whether every motor is off.
func (a ActuatorCommand) Zero() bool {
	return a == ActuatorCommand{}
}
