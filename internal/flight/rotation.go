package flight

import "math"

// Rotation returns the ZYX Euler rotation Rz(psi)·Ry(theta)·Rx(phi), which
// maps body-frame vectors into the inertial frame. Its transpose maps
// inertial vectors into the body frame.
func Rotation(phi, theta, psi float64) [3][3]float64 {
	sf, cf := math.Sincos(phi)
	st, ct := math.Sincos(theta)
	ss, cs := math.Sincos(psi)
	return [3][3]float64{
		{cs * ct, cs*st*sf - ss*cf, cs*st*cf + ss*sf},
		{ss * ct, ss*st*sf + cs*cf, ss*st*cf - cs*sf},
		{-st, ct * sf, ct * cf},
	}
}

// BodyFromInertial rotates an inertial-frame vector into the body frame.
func BodyFromInertial(phi, theta, psi float64, v [3]float64) [3]float64 {
	r := Rotation(phi, theta, psi)
	return [3]float64{
		r[0][0]*v[0] + r[1][0]*v[1] + r[2][0]*v[2],
		r[0][1]*v[0] + r[1][1]*v[1] + r[2][1]*v[2],
		r[0][2]*v[0] + r[1][2]*v[1] + r[2][2]*v[2],
	}
}

// InertialFromBody rotates a body-frame vector into the inertial frame.
func InertialFromBody(phi, theta, psi float64, v [3]float64) [3]float64 {
	r := Rotation(phi, theta, psi)
	return [3]float64{
		r[0][0]*v[0] + r[0][1]*v[1] + r[0][2]*v[2],
		r[1][0]*v[0] + r[1][1]*v[1] + r[1][2]*v[2],
		r[2][0]*v[0] + r[2][1]*v[1] + r[2][2]*v[2],
	}
}
