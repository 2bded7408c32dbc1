package viz

import (
	"strings"
)

// Braille cells are 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a Braille pixel grid over a square patch of ground centred on
// the origin.
type Canvas struct {
	Width, Height int
	Span          float64
	Grid          [][]rune
}

// NewCanvas returns a w x h cell canvas covering span metres on its
// shorter side.
func NewCanvas(w, h int, span float64) *Canvas {
	if span <= 0 {
		span = 1
	}
	c := &Canvas{Width: w, Height: h, Span: span, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights a dot in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// Project maps a ground position in metres to sub-pixel coordinates, with
// +x to the right and +y up.
func (c *Canvas) Project(x, y float64) (int, int) {
	pw, ph := c.Width*2, c.Height*4
	scale := float64(min(pw, ph)) / c.Span
	return pw/2 + int(x*scale), ph/2 - int(y*scale)
}

// Point lights the dot under a ground position.
func (c *Canvas) Point(x, y float64) {
	c.Set(c.Project(x, y))
}

// Line joins two ground positions.
func (c *Canvas) Line(x0, y0, x1, y1 float64) {
	ax, ay := c.Project(x0, y0)
	bx, by := c.Project(x1, y1)
	c.DrawLine(ax, ay, bx, by)
}

// Cross marks a ground position with a small plus sign.
func (c *Canvas) Cross(x, y float64) {
	px, py := c.Project(x, y)
	for d := -2; d <= 2; d++ {
		c.Set(px+d, py)
		c.Set(px, py+d)
	}
}

// DrawLine draws a line in sub-pixel coordinates using Bresenham's
// algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
