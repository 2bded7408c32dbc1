package estimator

import "github.com/san-kum/flowctl/internal/flight"

// passThrough overwrites position, attitude and velocity from ext. Pitch is
// negated to match the StateVector convention and velocity is rotated from
// the inertial frame into the body frame.
func passThrough(s *flight.StateVector, ext flight.ExternalEstimate) {
	s.OX, s.OY, s.OZ = ext.X, ext.Y, ext.Z
	s.Psi = ext.Yaw
	s.Theta = -ext.Pitch
	s.Phi = ext.Roll

	v := flight.BodyFromInertial(
		float64(s.Phi), float64(s.Theta), float64(s.Psi),
		[3]float64{float64(ext.VX), float64(ext.VY), float64(ext.VZ)},
	)
	s.VX, s.VY, s.VZ = float32(v[0]), float32(v[1]), float32(v[2])
}
