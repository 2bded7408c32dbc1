package export

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/flowctl/internal/storage"
)

var ErrNoFields = errors.New("no plottable fields")

var palette = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255},
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 255},
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 255},
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 255},
	color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 255},
	color.RGBA{R: 0x8c, G: 0x56, B: 0x4b, A: 255},
}

// SeriesPlot builds a time-series plot of fields. Missing fields are an
// error; non-finite samples are skipped.
func SeriesPlot(s *storage.Series, fields []string) (*plot.Plot, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	p := plot.New()
	p.X.Label.Text = "time (s)"
	p.Add(plotter.NewGrid())

	for i, name := range fields {
		col := s.Column(name)
		if col == nil {
			return nil, fmt.Errorf("field %q: %w", name, ErrNoFields)
		}
		pts := make(plotter.XYs, 0, len(col))
		for j, v := range col {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			pts = append(pts, plotter.XY{X: s.Times[j], Y: v})
		}
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		line.Color = palette[i%len(palette)]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(name, line)
	}
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// SeriesPNG renders fields to path. The image format follows the extension.
func SeriesPNG(path string, s *storage.Series, fields []string) error {
	p, err := SeriesPlot(s, fields)
	if err != nil {
		return err
	}
	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
