package plan

import (
	"fmt"
	"sort"
)

// Presets are the built-in plans.
var Presets = map[string]func() *Plan{
	"hover":  Hover,
	"plane":  Plane,
	"square": Square,
	"hop":    Hop,
}

// Names returns the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup builds the preset called name.
func Lookup(name string) (*Plan, error) {
	build, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlan, name)
	}
	return build(), nil
}

const (
	cruiseHeight = 0.35
	cruiseSpeed  = 0.2
	settle       = 0.5
)

// Hover takes off, holds half a metre for eight seconds and lands.
func Hover() *Plan {
	return &Plan{
		Name:        "hover",
		Description: "take off to 0.5 m, hold, land",
		Segments: []Segment{
			Stop(1),
			Hold(Point{0, 0, 0.5}, 8),
			Stop(1),
		},
	}
}

// Hop is a short climb and descent for altitude-loop checks.
func Hop() *Plan {
	low, high := Point{0, 0, 0.15}, Point{0, 0, 0.5}
	return &Plan{
		Name:        "hop",
		Description: "climb from 0.15 m to 0.5 m and back",
		Segments: []Segment{
			Stop(1),
			Hold(low, 1),
			Ramp(low, high, cruiseSpeed),
			Hold(high, 2),
			Ramp(high, low, cruiseSpeed),
			Hold(low, 1),
			Stop(1),
		},
	}
}

// Square flies a 1 m square at cruise height.
func Square() *Plan {
	corners := []Point{
		{0, 0, cruiseHeight},
		{1, 0, cruiseHeight},
		{1, 1, cruiseHeight},
		{0, 1, cruiseHeight},
		{0, 0, cruiseHeight},
	}
	return tour("square", "1 m square at 0.35 m", corners, 1)
}

// planeOutline is the outline of an aeroplane in the unit square, traced
// clockwise from the nose.
var planeOutline = []Point{
	{0.48606811145510836, 0.9936708860759493},
	{0.5139318885448917, 1.0},
	{0.5789473684210527, 0.8860759493670886},
	{0.5882352941176471, 0.6962025316455697},
	{0.7987616099071208, 0.560126582278481},
	{1.0, 0.4240506329113924},
	{1.0, 0.36075949367088606},
	{0.7585139318885449, 0.4177215189873418},
	{0.5789473684210527, 0.4651898734177215},
	{0.56656346749226, 0.17405063291139242},
	{0.6873065015479877, 0.04430379746835443},
	{0.6904024767801857, 0.012658227848101266},
	{0.5325077399380805, 0.056962025316455694},
	{0.5139318885448917, 0.015822784810126583},
	{0.49226006191950467, 0.012658227848101266},
	{0.4674922600619195, 0.05379746835443038},
	{0.3219814241486068, 0.0},
	{0.3157894736842105, 0.0379746835443038},
	{0.43034055727554177, 0.16455696202531644},
	{0.42105263157894735, 0.4620253164556962},
	{0.2260061919504644, 0.41455696202531644},
	{0.0030959752321981426, 0.35443037974683544},
	{0.0, 0.4240506329113924},
	{0.20743034055727555, 0.560126582278481},
	{0.4086687306501548, 0.6930379746835443},
	{0.43343653250773995, 0.9367088607594937},
}

// Plane traces the aeroplane outline at cruise height.
func Plane() *Plan {
	low, high := Point{0, 0, 0.15}, Point{0, 0, cruiseHeight}
	segs := []Segment{
		Stop(1),
		Hold(low, 1),
		Ramp(low, high, cruiseSpeed),
		Hold(high, 1),
	}

	prev := high
	for _, w := range planeOutline {
		next := Point{w[0], w[1], cruiseHeight}
		segs = append(segs, Ramp(prev, next, cruiseSpeed), Hold(next, settle))
		prev = next
	}

	down := Point{prev[0], prev[1], 0.15}
	segs = append(segs,
		Ramp(prev, down, cruiseSpeed),
		Hold(down, 1),
		Stop(1),
	)
	return &Plan{Name: "plane", Description: "aeroplane outline at 0.35 m", Segments: segs}
}

// tour climbs to the first point, visits the rest, and lands.
func tour(name, desc string, pts []Point, dwell float64) *Plan {
	start := pts[0]
	ground := Point{start[0], start[1], 0.15}
	segs := []Segment{
		Stop(1),
		Hold(ground, 1),
		Ramp(ground, start, cruiseSpeed),
		Hold(start, dwell),
	}
	for i := 1; i < len(pts); i++ {
		segs = append(segs, Ramp(pts[i-1], pts[i], cruiseSpeed), Hold(pts[i], dwell))
	}
	segs = append(segs, Stop(1))
	return &Plan{Name: name, Description: desc, Segments: segs}
}
