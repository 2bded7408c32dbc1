package controller

import "github.com/san-kum/flowctl/internal/telemetry"

// LogGroup is the name of the pipeline telemetry group.
const LogGroup = "lqrlog"

// Log mirrors one Frame into telemetry fields.
type Log struct {
	group *telemetry.Group

	numTOF, numFlow             *telemetry.Var
	ox, oy, oz, psi, theta, phi *telemetry.Var
	vx, vy, vz, wx, wy, wz      *telemetry.Var
	oxDes, oyDes, ozDes         *telemetry.Var
	tauX, tauY, tauZ, fz        *telemetry.Var
	m                           [4]*telemetry.Var
	nx, ny, r, az               *telemetry.Var
}

func NewLog() *Log {
	g := telemetry.NewGroup(LogGroup)
	l := &Log{group: g}

	l.numTOF = g.Uint16("num_tof")
	l.numFlow = g.Uint16("num_flow")
	l.ox, l.oy, l.oz = g.Float("o_x"), g.Float("o_y"), g.Float("o_z")
	l.psi, l.theta, l.phi = g.Float("psi"), g.Float("theta"), g.Float("phi")
	l.vx, l.vy, l.vz = g.Float("v_x"), g.Float("v_y"), g.Float("v_z")
	l.wx, l.wy, l.wz = g.Float("w_x"), g.Float("w_y"), g.Float("w_z")
	l.oxDes, l.oyDes, l.ozDes = g.Float("o_x_des"), g.Float("o_y_des"), g.Float("o_z_des")
	l.tauX, l.tauY, l.tauZ, l.fz = g.Float("tau_x"), g.Float("tau_y"), g.Float("tau_z"), g.Float("f_z")
	l.m = [4]*telemetry.Var{g.Uint16("m_1"), g.Uint16("m_2"), g.Uint16("m_3"), g.Uint16("m_4")}
	l.nx, l.ny, l.r, l.az = g.Float("n_x"), g.Float("n_y"), g.Float("r"), g.Float("a_z")
	return l
}

// Group returns the underlying telemetry group.
func (l *Log) Group() *telemetry.Group { return l.group }

// Publish stores f in the telemetry slots.
func (l *Log) Publish(f *Frame) {
	l.numTOF.SetUint16(f.Sample.RangeCount)
	l.numFlow.SetUint16(f.Sample.FlowCount)

	s := &f.State
	l.ox.SetFloat(s.OX)
	l.oy.SetFloat(s.OY)
	l.oz.SetFloat(s.OZ)
	l.psi.SetFloat(s.Psi)
	l.theta.SetFloat(s.Theta)
	l.phi.SetFloat(s.Phi)
	l.vx.SetFloat(s.VX)
	l.vy.SetFloat(s.VY)
	l.vz.SetFloat(s.VZ)
	l.wx.SetFloat(s.WX)
	l.wy.SetFloat(s.WY)
	l.wz.SetFloat(s.WZ)

	l.oxDes.SetFloat(f.Setpoint.X)
	l.oyDes.SetFloat(f.Setpoint.Y)
	l.ozDes.SetFloat(f.Setpoint.Z)

	l.tauX.SetFloat(f.Command.TauX)
	l.tauY.SetFloat(f.Command.TauY)
	l.tauZ.SetFloat(f.Command.TauZ)
	l.fz.SetFloat(f.Command.Fz)
	for i, v := range l.m {
		v.SetUint16(f.Motors[i])
	}

	l.nx.SetFloat(f.Meas.NX)
	l.ny.SetFloat(f.Meas.NY)
	l.r.SetFloat(f.Meas.R)
	l.az.SetFloat(f.Meas.AZ)
}
