package telemetry

import (
	"math"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGroup() (*Group, *Var, *Var) {
	g := NewGroup("lqrlog")
	count := g.Uint16("num_tof")
	oz := g.Float("o_z")
	return g, count, oz
}

func TestGroupRegistration(t *testing.T) {
	g, count, oz := sampleGroup()

	assert.Equal(t, "lqrlog", g.Name())
	assert.Equal(t, []string{"num_tof", "o_z"}, g.Names())
	assert.Equal(t, 2, g.Len())

	v, ok := g.Lookup("o_z")
	require.True(t, ok)
	assert.Same(t, oz, v)
	assert.Equal(t, KindFloat, v.Kind())
	assert.Equal(t, KindUint16, count.Kind())

	_, ok = g.Lookup("missing")
	assert.False(t, ok)

	assert.Panics(t, func() { g.Float("o_z") })
}

func TestVarValues(t *testing.T) {
	g, count, oz := sampleGroup()

	count.SetUint16(65535)
	oz.SetFloat(-0.25)

	assert.Equal(t, uint16(65535), count.Uint16())
	assert.Equal(t, float32(-0.25), oz.Float())
	assert.Equal(t, []float64{65535, -0.25}, g.Sample(nil))

	oz.SetFloat(float32(math.NaN()))
	assert.True(t, math.IsNaN(oz.Value()))
}

func TestSampleAppends(t *testing.T) {
	g, count, _ := sampleGroup()
	count.SetUint16(3)

	buf := []float64{1.5}
	buf = g.Sample(buf)
	assert.Equal(t, []float64{1.5, 3, 0}, buf)
}

func TestConcurrentWritersAndReaders(t *testing.T) {
	g, count, oz := sampleGroup()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			count.SetUint16(uint16(i))
			oz.SetFloat(float32(i))
		}
	}()
	go func() {
		defer wg.Done()
		buf := make([]float64, 0, g.Len())
		for i := 0; i < 10000; i++ {
			buf = g.Sample(buf[:0])
		}
	}()
	wg.Wait()

	assert.Equal(t, uint16(9999), count.Uint16())
	assert.Equal(t, float32(9999), oz.Float())
}

func TestCollector(t *testing.T) {
	g, count, oz := sampleGroup()
	count.SetUint16(7)
	oz.SetFloat(0.5)

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(NewCollector("flowctl", g)))

	families, err := reg.Gather()
	require.NoError(t, err)

	got := make(map[string]float64)
	for _, mf := range families {
		require.Len(t, mf.GetMetric(), 1)
		got[mf.GetName()] = mf.GetMetric()[0].GetGauge().GetValue()
	}
	assert.Equal(t, map[string]float64{
		"flowctl_lqrlog_num_tof": 7,
		"flowctl_lqrlog_o_z":     0.5,
	}, got)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "m_1", sanitize("m.1"))
	assert.Equal(t, "o_x_des", sanitize("o_x_des"))
}
