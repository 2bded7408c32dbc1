package control

import "github.com/san-kum/flowctl/internal/flight"

// Output channel indices.
const (
	ChanTauX = iota
	ChanTauY
	ChanTauZ
	ChanFz
	NumChannels
)

// HoverThrust is the collective thrust, in newtons, that holds the vehicle at
// rest.
const HoverThrust float32 = 0.35217900

// Law is an affine state-feedback law.
type Law struct {
	K    [NumChannels][flight.StateDim]float32
	Bias [NumChannels]float32
}

func NewLaw(k [NumChannels][flight.StateDim]float32, bias [NumChannels]float32) *Law {
	return &Law{K: k, Bias: bias}
}

// hoverGains is K for the hover-linearized vehicle.
var hoverGains = [NumChannels][flight.StateDim]float32{
	ChanTauX: {
		flight.IdxOY:  -0.00239430,
		flight.IdxPhi: 0.00346463,
		flight.IdxVY:  -0.00135445,
		flight.IdxWX:  0.00047651,
	},
	ChanTauY: {
		flight.IdxOX:    0.00223966,
		flight.IdxTheta: 0.00734151,
		flight.IdxVX:    0.00186963,
		flight.IdxWY:    0.00129356,
	},
	ChanTauZ: {
		flight.IdxPsi: 0.00164210,
		flight.IdxWZ:  0.00039822,
	},
	ChanFz: {
		flight.IdxOZ: 0.11471886,
		flight.IdxVZ: 0.09147906,
	},
}

// Default returns the hover law.
func Default() *Law {
	return NewLaw(hoverGains, [NumChannels]float32{ChanFz: HoverThrust})
}

// Target returns the reference state for sp: the setpoint position with every
// other component at zero.
func Target(sp flight.Setpoint) [flight.StateDim]float32 {
	var t [flight.StateDim]float32
	t[flight.IdxOX] = sp.X
	t[flight.IdxOY] = sp.Y
	t[flight.IdxOZ] = sp.Z
	return t
}

// Compute evaluates the law for one tick.
func (l *Law) Compute(s flight.StateVector, sp flight.Setpoint) flight.ControlCommand {
	x := s.Array()
	target := Target(sp)

	u := l.Bias
	for i := range u {
		for j := range x {
			// absent terms stay absent even for non-finite x
			if l.K[i][j] == 0 {
				continue
			}
			u[i] -= l.K[i][j] * (x[j] - target[j])
		}
	}
	return flight.ControlCommand{
		TauX: u[ChanTauX],
		TauY: u[ChanTauY],
		TauZ: u[ChanTauZ],
		Fz:   u[ChanFz],
	}
}
