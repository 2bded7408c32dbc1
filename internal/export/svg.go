package export

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/flowctl/internal/storage"
)

var ErrNoTrack = errors.New("series has no ground track")

type point struct{ X, Y float64 }

// TrackSVG draws the true ground track of a run, with the commanded
// position overlaid when the series carries it.
func TrackSVG(s *storage.Series, width, height int) (string, error) {
	truth := track(s, "true_x", "true_y")
	if len(truth) < 2 {
		return "", ErrNoTrack
	}
	desired := track(s, "o_x_des", "o_y_des")

	all := append(append([]point(nil), truth...), desired...)
	b := boundsOf(all)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
	if len(desired) >= 2 {
		writePath(&sb, desired, b, width, height, "#888888", ` stroke-dasharray="4 3"`)
	}
	writePath(&sb, truth, b, width, height, "#00ff88", "")
	sb.WriteString("</svg>\n")
	return sb.String(), nil
}

func track(s *storage.Series, xf, yf string) []point {
	xs, ys := s.Column(xf), s.Column(yf)
	if xs == nil || ys == nil {
		return nil
	}
	pts := make([]point, 0, len(xs))
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) || math.IsInf(xs[i], 0) || math.IsInf(ys[i], 0) {
			continue
		}
		pts = append(pts, point{xs[i], ys[i]})
	}
	return pts
}

type bounds struct{ minX, minY, rangeX, rangeY float64 }

// boundsOf pads the extent by 10% and keeps the aspect ratio square so
// the track is not distorted.
func boundsOf(points []point) bounds {
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	span *= 1.2
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	return bounds{minX: cx - span/2, minY: cy - span/2, rangeX: span, rangeY: span}
}

func writePath(sb *strings.Builder, points []point, b bounds, width, height int, stroke, extra string) {
	fmt.Fprintf(sb, `<path fill="none" stroke="%s" stroke-width="1.5"%s d="M`, stroke, extra)
	for i, p := range points {
		x := (p.X - b.minX) / b.rangeX * float64(width)
		y := float64(height) - (p.Y-b.minY)/b.rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString(`"/>` + "\n")
}
