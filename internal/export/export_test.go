package export

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/flowctl/internal/storage"
)

func circle() *storage.Series {
	s := &storage.Series{Fields: []string{"o_x_des", "o_y_des", "true_x", "true_y"}}
	for i := 0; i < 50; i++ {
		t := float64(i) * 0.1
		s.Times = append(s.Times, t)
		s.Rows = append(s.Rows, []float64{math.Cos(t), math.Sin(t), 0.9 * math.Cos(t), 0.9 * math.Sin(t)})
	}
	return s
}

func TestTrackSVG(t *testing.T) {
	svg, err := TrackSVG(circle(), 400, 400)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.Equal(t, 2, strings.Count(svg, "<path"))
	assert.Contains(t, svg, "stroke-dasharray")
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))
}

func TestTrackSVGWithoutSetpoint(t *testing.T) {
	s := &storage.Series{Fields: []string{"true_x", "true_y"}}
	s.Times = []float64{0, 1, 2}
	s.Rows = [][]float64{{0, 0}, {math.NaN(), 1}, {1, 1}}
	svg, err := TrackSVG(s, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(svg, "<path"))
	assert.NotContains(t, svg, "NaN")
}

func TestTrackSVGNoTrack(t *testing.T) {
	_, err := TrackSVG(&storage.Series{Fields: []string{"o_z"}}, 100, 100)
	assert.ErrorIs(t, err, ErrNoTrack)
}

func TestBoundsSquare(t *testing.T) {
	b := boundsOf([]point{{0, 0}, {2, 1}})
	assert.Equal(t, b.rangeX, b.rangeY)
	assert.InDelta(t, 2.4, b.rangeX, 1e-12)
	assert.InDelta(t, -0.2, b.minX, 1e-12)
}

func TestSeriesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.png")
	require.NoError(t, SeriesPNG(path, circle(), []string{"true_x", "o_x_des"}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSeriesPlotErrors(t *testing.T) {
	_, err := SeriesPlot(circle(), nil)
	assert.ErrorIs(t, err, ErrNoFields)
	_, err = SeriesPlot(circle(), []string{"missing"})
	assert.ErrorIs(t, err, ErrNoFields)
}
