// Package mixer converts body torques and collective thrust into the four
// motor commands and enforces the disabled-axis safety gate.
package mixer

import (
	"math"

	"github.com/san-kum/flowctl/internal/flight"
)

// Mixing coefficients for the vehicle geometry: roll/pitch arm, yaw drag and
// thrust, in command units per N·m or N.
const (
	CoeffArm    float32 = 3706927.3
	CoeffYaw    float32 = 38218981.7
	CoeffThrust float32 = 122328.6
)

// NumMotors is the number of actuator commands.
const NumMotors = 4

// Matrix maps (TauX, TauY, TauZ, Fz) to raw motor values. Rows are motors.
type Matrix [NumMotors][4]float32

// Quad is the mixing matrix for the X-configuration airframe.
var Quad = Matrix{
	{-CoeffArm, -CoeffArm, -CoeffYaw, CoeffThrust},
	{-CoeffArm, CoeffArm, CoeffYaw, CoeffThrust},
	{CoeffArm, CoeffArm, -CoeffYaw, CoeffThrust},
	{CoeffArm, -CoeffArm, CoeffYaw, CoeffThrust},
}

// Mixer applies a Matrix and the safety gate.
type Mixer struct {
	M Matrix
}

func New(m Matrix) *Mixer {
	return &Mixer{M: m}
}

// Default returns a mixer for the Quad matrix.
func Default() *Mixer {
	return New(Quad)
}

// Mix returns the unsaturated motor values for cmd.
func (m *Mixer) Mix(cmd flight.ControlCommand) [NumMotors]float32 {
	in := [4]float32{cmd.TauX, cmd.TauY, cmd.TauZ, cmd.Fz}
	var out [NumMotors]float32
	for i, row := range m.M {
		for j, c := range row {
			out[i] += c * in[j]
		}
	}
	return out
}

// Command mixes and saturates cmd.
func (m *Mixer) Command(cmd flight.ControlCommand) flight.ActuatorCommand {
	raw := m.Mix(cmd)
	var a flight.ActuatorCommand
	for i, v := range raw {
		a[i] = Saturate(v)
	}
	return a
}

// Gate returns the actuator command for this tick. A disabled z-axis yields
// all zeros whatever cmd holds.
func (m *Mixer) Gate(cmd flight.ControlCommand, sp flight.Setpoint) flight.ActuatorCommand {
	if !sp.Enabled() {
		return flight.ActuatorCommand{}
	}
	return m.Command(cmd)
}

// Saturate rounds v to the nearest integer and clamps it to [0, MotorMax].
// NaN maps to 0.
func Saturate(v float32) uint16 {
	r := math.Round(float64(v))
	switch {
	case math.IsNaN(r), r <= 0:
		return 0
	case r >= flight.MotorMax:
		return flight.MotorMax
	}
	return uint16(r)
}
