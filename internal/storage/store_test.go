package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/flowctl/internal/flightsim"
	"github.com/san-kum/flowctl/internal/monitoring"
)

func sampleResult() *flightsim.Result {
	return &flightsim.Result{
		Plan:   "hover",
		Fields: []string{"o_z", "m_1", "true_z"},
		Times:  []float64{0, 0.01, 0.02},
		Rows: [][]float64{
			{0, 0, 0},
			{0.125, 43082, 0.1},
			{0.25, 65535, math.NaN()},
		},
		Metrics:  map[string]float64{"tracking_rms": 0.01},
		Ticks:    30,
		Executed: 15,
		Seed:     3,
	}
}

func TestSaveLoad(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Init())

	id, err := s.Save(RunMetadata{Integrator: "rk4", UseObserver: true}, sampleResult())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	meta, err := s.Load(id)
	require.NoError(t, err)
	assert.Equal(t, id, meta.ID)
	assert.Equal(t, "hover", meta.Plan)
	assert.Equal(t, int64(3), meta.Seed)
	assert.Equal(t, 15, meta.Executed)
	assert.True(t, meta.UseObserver)
	assert.InDelta(t, 0.03, meta.Duration, 1e-12)
	assert.Equal(t, []string{"o_z", "m_1", "true_z"}, meta.Fields)
	assert.Equal(t, 0.01, meta.Metrics["tracking_rms"])

	series, err := s.LoadSeries(id[:8])
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.01, 0.02}, series.Times)
	assert.Equal(t, []float64{0, 43082, 65535}, series.Column("m_1"))
	assert.True(t, math.IsNaN(series.Column("true_z")[2]))
	assert.Nil(t, series.Column("missing"))
}

func TestListSortsAndSkipsBroken(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	require.NoError(t, s.Init())

	var logged []string
	monitoring.SetLogger(func(format string, args ...any) { logged = append(logged, format) })
	t.Cleanup(func() { monitoring.SetLogger(nil) })

	now := time.Now()
	second, err := s.Save(RunMetadata{Timestamp: now}, sampleResult())
	require.NoError(t, err)
	first, err := s.Save(RunMetadata{Timestamp: now.Add(-time.Hour)}, sampleResult())
	require.NoError(t, err)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "broken"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	runs, err := s.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0].ID)
	assert.Equal(t, second, runs[1].ID)
	assert.Len(t, logged, 1)
}

func TestListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "nope")).List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	for _, name := range []string{"abc123", "abd456"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, name), 0755))
	}

	id, err := s.Resolve("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	_, err = s.Resolve("ab")
	assert.ErrorIs(t, err, ErrAmbiguousRun)

	_, err = s.Resolve("zzz")
	assert.ErrorIs(t, err, ErrRunNotFound)

	_, err = s.Load("")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, FromResult(sampleResult())))

	var got map[string]struct {
		Time []int64   `json:"time"`
		Data []float64 `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	require.Contains(t, got, "o_z")
	assert.Equal(t, []int64{0, 10, 20}, got["o_z"].Time)
	assert.Equal(t, []float64{0, 0.125, 0.25}, got["o_z"].Data)

	// the NaN sample is dropped
	assert.Equal(t, []int64{0, 10}, got["true_z"].Time)
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, FromResult(sampleResult())))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "time,o_z,m_1,true_z", lines[0])
	assert.Equal(t, "0.010,0.125,43082,0.1", lines[2])
	assert.Equal(t, "0.020,0.25,65535,NaN", lines[3])
}
