package estimator

import "github.com/san-kum/flowctl/internal/flight"

// Observer gains, designed offline.
const (
	gainRangeOZ   float32 = 3.524731
	gainFlowTheta float32 = 0.029925
	gainFlowPhi   float32 = -0.024252
	gainFlowVX    float32 = 0.322134
	gainFlowVY    float32 = 0.317070
	gainRangeVZ   float32 = 5.676619
)

// Residuals returns predicted minus measured flow in x and y, and estimated
// height minus measured range.
func Residuals(s flight.StateVector, m Measurements) (nxErr, nyErr, rErr float32) {
	nxErr = flight.KFlow*((s.VX/flight.OZEq)-s.WY) - m.NX
	nyErr = flight.KFlow*(s.WX+(s.VY/flight.OZEq)) - m.NY
	rErr = s.OZ - m.R
	return
}

// observe advances s by one forward-Euler step. Each line sees the values
// already updated above it.
func observe(s *flight.StateVector, m Measurements) {
	const (
		dt = flight.Dt
		g  = flight.Gravity
	)
	nxErr, nyErr, rErr := Residuals(*s, m)

	s.OX += dt * s.VX
	s.OY += dt * s.VY
	s.OZ += dt * (s.VZ - gainRangeOZ*rErr)
	s.Psi += dt * s.WZ
	s.Theta += dt * (s.WY - gainFlowTheta*nxErr)
	s.Phi += dt * (s.WX - gainFlowPhi*nyErr)
	s.VX += dt * (g*s.Theta - gainFlowVX*nxErr)
	s.VY += dt * (-g*s.Phi - gainFlowVY*nyErr)
	s.VZ += dt * (m.AZ - g - gainRangeVZ*rErr)
}
