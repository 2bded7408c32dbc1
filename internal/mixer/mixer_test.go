package mixer

import (
	"math"
	"testing"

	"github.com/san-kum/flowctl/internal/flight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaturate(t *testing.T) {
	tests := []struct {
		in   float32
		want uint16
	}{
		{0, 0},
		{-1, 0},
		{-1e9, 0},
		{0.4, 0},
		{0.5, 1},
		{1.49, 1},
		{1234.6, 1235},
		{65534.4, 65534},
		{65535, 65535},
		{65535.6, 65535},
		{1e9, 65535},
		{float32(math.Inf(1)), 65535},
		{float32(math.Inf(-1)), 0},
		{float32(math.NaN()), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Saturate(tt.in), "Saturate(%v)", tt.in)
	}
}

func TestSafetyGate(t *testing.T) {
	m := Default()
	cmds := []flight.ControlCommand{
		{},
		{Fz: 0.35},
		{TauX: 1, TauY: -1, TauZ: 0.5, Fz: 10},
		{TauX: float32(math.NaN()), Fz: float32(math.Inf(1))},
	}
	for _, cmd := range cmds {
		got := m.Gate(cmd, flight.Setpoint{X: 1, Y: 2, Z: 3, ModeZ: flight.ModeDisable})
		assert.True(t, got.Zero(), "disabled gate let %v through for %+v", got, cmd)
	}

	got := m.Gate(flight.ControlCommand{Fz: 0.35}, flight.Setpoint{ModeZ: flight.ModeAbsolute})
	assert.False(t, got.Zero())
	got = m.Gate(flight.ControlCommand{Fz: 0.35}, flight.Setpoint{ModeZ: flight.ModeVelocity})
	assert.False(t, got.Zero())
}

func TestThrustOnlySymmetry(t *testing.T) {
	m := Default()
	for _, fz := range []float32{0, 0.1, 0.35217900, 0.5, 2} {
		a := m.Command(flight.ControlCommand{Fz: fz})
		for i := 1; i < NumMotors; i++ {
			assert.Equal(t, a[0], a[i], "motor %d differs for Fz=%v: %v", i, fz, a)
		}
	}
}

func TestHoverCommand(t *testing.T) {
	a := Default().Command(flight.ControlCommand{Fz: 0.35217900})
	// 122328.6 * 0.352179 ~ 43081.56
	assert.Equal(t, flight.ActuatorCommand{43082, 43082, 43082, 43082}, a)
}

func TestMixSaturatesWithoutWrapping(t *testing.T) {
	m := Default()

	a := m.Command(flight.ControlCommand{Fz: 1})
	assert.Equal(t, flight.ActuatorCommand{65535, 65535, 65535, 65535}, a)

	a = m.Command(flight.ControlCommand{Fz: -1})
	assert.True(t, a.Zero())

	// strong positive roll torque overwhelms thrust: motors 3 and 4 rise, 1 and 2 fall
	a = m.Command(flight.ControlCommand{TauX: 0.02, Fz: 0.35})
	assert.Equal(t, uint16(0), a[0])
	assert.Equal(t, uint16(0), a[1])
	assert.Equal(t, uint16(65535), a[2])
	assert.Equal(t, uint16(65535), a[3])
}

func TestMixInRange(t *testing.T) {
	m := Default()
	cmd := flight.ControlCommand{TauX: 1e-4, TauY: -2e-4, TauZ: 1e-5, Fz: 0.3}
	raw := m.Mix(cmd)
	a := m.Command(cmd)
	for i := range raw {
		require.True(t, raw[i] > 0 && raw[i] < 65535, "raw[%d] = %v out of range", i, raw[i])
		assert.Equal(t, uint16(math.Round(float64(raw[i]))), a[i])
	}
}

func TestModelInvertsMixer(t *testing.T) {
	model, err := NewModel(Quad)
	require.NoError(t, err)

	cmd := flight.ControlCommand{TauX: 1e-4, TauY: -2e-4, TauZ: 1e-5, Fz: 0.3}
	raw := Default().Mix(cmd)
	var a flight.ActuatorCommand
	for i, v := range raw {
		a[i] = Saturate(v)
	}

	w := model.Wrench(a)
	// rounding to whole command units limits recovery
	assert.InDelta(t, float64(cmd.TauX), w[0], 1e-6)
	assert.InDelta(t, float64(cmd.TauY), w[1], 1e-6)
	assert.InDelta(t, float64(cmd.TauZ), w[2], 1e-7)
	assert.InDelta(t, float64(cmd.Fz), w[3], 1e-4)
}

func TestModelRejectsSingular(t *testing.T) {
	var m Matrix
	for i := range m {
		m[i] = [4]float32{1, 1, 1, 1}
	}
	_, err := NewModel(m)
	assert.ErrorIs(t, err, ErrSingular)
}

func TestMatrixDense(t *testing.T) {
	d := Quad.Dense()
	r, c := d.Dims()
	assert.Equal(t, NumMotors, r)
	assert.Equal(t, 4, c)
	assert.InDelta(t, float64(CoeffYaw), d.At(1, 2), 1)
}

func TestCommandDoesNotAllocate(t *testing.T) {
	m := Default()
	cmd := flight.ControlCommand{Fz: 0.35}
	sp := flight.Setpoint{ModeZ: flight.ModeAbsolute}
	allocs := testing.AllocsPerRun(100, func() {
		_ = m.Gate(cmd, sp)
	})
	assert.Zero(t, allocs)
}
