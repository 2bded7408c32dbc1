// Package plant models the vehicle the controller flies in simulation: a
// rigid-body quadrotor driven by body torques and a collective thrust along
// body z. The inertial frame has z pointing up.
package plant

import (
	"fmt"
	"math"

	"github.com/san-kum/flowctl/internal/dynamo"
	"github.com/san-kum/flowctl/internal/flight"
)

// State indices. Velocity is inertial; P, Q, R are body rates.
const (
	X = iota
	Y
	Z
	Roll
	Pitch
	Yaw
	VX
	VY
	VZ
	P
	Q
	R
	Dim
)

// Control indices, matching the mixer channel order.
const (
	TauX = iota
	TauY
	TauZ
	Thrust
)

// Airframe defaults for a 27 g class quadrotor carrying a flow deck.
const (
	DefaultMass    = 0.0359 // kg
	DefaultJx      = 2.3951e-5
	DefaultJy      = 2.3951e-5
	DefaultJz      = 3.2347e-5
	DefaultDrag    = 0.0
	DefaultAngDrag = 0.0
)

// Quadrotor is the 12-state nonlinear model.
type Quadrotor struct {
	Mass       float64
	Jx, Jy, Jz float64
	Gravity    float64
	Drag       float64 // linear translational drag, N·s/m
	AngDrag    float64 // linear rotational drag, N·m·s
}

func NewQuadrotor() *Quadrotor {
	return &Quadrotor{
		Mass:    DefaultMass,
		Jx:      DefaultJx,
		Jy:      DefaultJy,
		Jz:      DefaultJz,
		Gravity: float64(flight.Gravity),
		Drag:    DefaultDrag,
		AngDrag: DefaultAngDrag,
	}
}

func (q *Quadrotor) StateDim() int   { return Dim }
func (q *Quadrotor) ControlDim() int { return 4 }

// HoverThrust is the collective thrust that balances gravity.
func (q *Quadrotor) HoverThrust() float64 {
	return q.Mass * q.Gravity
}

// accel returns the inertial acceleration, including ground reaction.
func (q *Quadrotor) accel(x dynamo.State, u dynamo.Control) [3]float64 {
	rot := flight.Rotation(x[Roll], x[Pitch], x[Yaw])
	f := math.Max(0, u[Thrust]) / q.Mass
	a := [3]float64{
		rot[0][2]*f - q.Drag*x[VX]/q.Mass,
		rot[1][2]*f - q.Drag*x[VY]/q.Mass,
		rot[2][2]*f - q.Drag*x[VZ]/q.Mass - q.Gravity,
	}
	if OnGround(x) && a[2] < 0 {
		a[2] = 0
	}
	return a
}

func (q *Quadrotor) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	sf, cf := math.Sincos(x[Roll])
	st, ct := math.Sincos(x[Pitch])
	p, qr, r := x[P], x[Q], x[R]

	a := q.accel(x, u)

	dx := make(dynamo.State, Dim)
	dx[X], dx[Y], dx[Z] = x[VX], x[VY], x[VZ]

	dx[Roll] = p + (qr*sf+r*cf)*st/ct
	dx[Pitch] = qr*cf - r*sf
	dx[Yaw] = (qr*sf + r*cf) / ct

	dx[VX], dx[VY], dx[VZ] = a[0], a[1], a[2]

	dx[P] = (u[TauX] - (q.Jz-q.Jy)*qr*r - q.AngDrag*p) / q.Jx
	dx[Q] = (u[TauY] - (q.Jx-q.Jz)*p*r - q.AngDrag*qr) / q.Jy
	dx[R] = (u[TauZ] - (q.Jy-q.Jx)*p*qr - q.AngDrag*r) / q.Jz
	return dx
}

// OnGround reports whether the vehicle rests at or below z = 0.
func OnGround(x dynamo.State) bool {
	return x[Z] <= 0 && x[VZ] <= 0
}

// Constrain keeps x above the ground plane. It returns x.
func Constrain(x dynamo.State) dynamo.State {
	if x[Z] < 0 {
		x[Z] = 0
		if x[VZ] < 0 {
			x[VZ] = 0
		}
	}
	return x
}

// SpecificForceZ is what a body-mounted accelerometer reads along body z.
func (q *Quadrotor) SpecificForceZ(x dynamo.State, u dynamo.Control) float64 {
	a := q.accel(x, u)
	a[2] += q.Gravity
	body := flight.BodyFromInertial(x[Roll], x[Pitch], x[Yaw], a)
	return body[2]
}

// BodyVelocity is the inertial velocity expressed in the body frame.
func BodyVelocity(x dynamo.State) [3]float64 {
	return flight.BodyFromInertial(x[Roll], x[Pitch], x[Yaw], [3]float64{x[VX], x[VY], x[VZ]})
}

// Hovering returns a state at rest at height z.
func Hovering(x, y, z float64) dynamo.State {
	s := make(dynamo.State, Dim)
	s[X], s[Y], s[Z] = x, y, z
	return s
}

func (q *Quadrotor) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":     q.Mass,
		"jx":       q.Jx,
		"jy":       q.Jy,
		"jz":       q.Jz,
		"gravity":  q.Gravity,
		"drag":     q.Drag,
		"ang_drag": q.AngDrag,
	}
}

func (q *Quadrotor) SetParam(name string, value float64) error {
	var dst *float64
	positive := true
	switch name {
	case "mass":
		dst = &q.Mass
	case "jx":
		dst = &q.Jx
	case "jy":
		dst = &q.Jy
	case "jz":
		dst = &q.Jz
	case "gravity":
		dst = &q.Gravity
	case "drag":
		dst, positive = &q.Drag, false
	case "ang_drag":
		dst, positive = &q.AngDrag, false
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParameter, name)
	}
	if (positive && value <= 0) || value < 0 || math.IsNaN(value) {
		return fmt.Errorf("%w: %s = %g", dynamo.ErrParameterBounds, name, value)
	}
	*dst = value
	return nil
}
