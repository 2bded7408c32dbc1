// Package plan describes setpoint scripts: timed sequences of stop, hold and
// ramp segments that feed the controller a desired position over time.
package plan

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/flowctl/internal/flight"
)

var (
	ErrUnknownPlan    = errors.New("plan: unknown plan")
	ErrInvalidSegment = errors.New("plan: invalid segment")
)

// Kind names a segment type.
type Kind string

const (
	KindStop Kind = "stop" // motors off
	KindHold Kind = "hold" // constant position
	KindRamp Kind = "ramp" // straight line at constant speed
)

// Point is an inertial position in metres.
type Point [3]float64

func (p Point) dist(q Point) float64 {
	dx, dy, dz := q[0]-p[0], q[1]-p[1], q[2]-p[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Segment is one step of a plan. Stop and hold use Duration; ramp uses
// From, To and Speed.
type Segment struct {
	Kind     Kind    `yaml:"kind"`
	Duration float64 `yaml:"duration,omitempty"`
	At       Point   `yaml:"at,omitempty"`
	From     Point   `yaml:"from,omitempty"`
	To       Point   `yaml:"to,omitempty"`
	Speed    float64 `yaml:"speed,omitempty"`
}

// Length is the time the segment takes, in seconds.
func (s Segment) Length() float64 {
	if s.Kind == KindRamp {
		d := s.From.dist(s.To)
		if d == 0 {
			return 0
		}
		return d / s.Speed
	}
	return s.Duration
}

func (s Segment) validate() error {
	switch s.Kind {
	case KindStop, KindHold:
		if s.Duration < 0 || math.IsNaN(s.Duration) {
			return fmt.Errorf("%w: %s duration %g", ErrInvalidSegment, s.Kind, s.Duration)
		}
	case KindRamp:
		if !(s.Speed > 0) {
			return fmt.Errorf("%w: ramp speed %g", ErrInvalidSegment, s.Speed)
		}
	default:
		return fmt.Errorf("%w: kind %q", ErrInvalidSegment, s.Kind)
	}
	return nil
}

// setpoint evaluates the segment tau seconds after it began.
func (s Segment) setpoint(tau float64) flight.Setpoint {
	var p Point
	switch s.Kind {
	case KindStop:
		return flight.Setpoint{ModeZ: flight.ModeDisable}
	case KindHold:
		p = s.At
	case KindRamp:
		frac := 1.0
		if l := s.Length(); l > 0 {
			frac = math.Min(1, tau/l)
		}
		for i := range p {
			p[i] = s.From[i] + frac*(s.To[i]-s.From[i])
		}
	}
	return flight.Setpoint{
		X: float32(p[0]), Y: float32(p[1]), Z: float32(p[2]),
		ModeZ: flight.ModeAbsolute,
	}
}

// Plan is a named sequence of segments.
type Plan struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Segments    []Segment `yaml:"segments"`
}

// Validate checks every segment.
func (p *Plan) Validate() error {
	if len(p.Segments) == 0 {
		return fmt.Errorf("%w: plan %q has no segments", ErrInvalidSegment, p.Name)
	}
	for i, s := range p.Segments {
		if err := s.validate(); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return nil
}

// Duration is the total length of the plan in seconds.
func (p *Plan) Duration() float64 {
	total := 0.0
	for _, s := range p.Segments {
		total += s.Length()
	}
	return total
}

// Index returns the segment active at time t, or -1 outside the plan.
func (p *Plan) Index(t float64) int {
	i, _ := p.locate(t)
	return i
}

func (p *Plan) locate(t float64) (int, float64) {
	if t < 0 {
		return -1, 0
	}
	start := 0.0
	for i, s := range p.Segments {
		end := start + s.Length()
		if t < end {
			return i, t - start
		}
		start = end
	}
	return -1, 0
}

// At returns the setpoint at time t. ok is false before the start and after
// the end of the plan.
func (p *Plan) At(t float64) (sp flight.Setpoint, ok bool) {
	i, tau := p.locate(t)
	if i < 0 {
		return flight.Setpoint{ModeZ: flight.ModeDisable}, false
	}
	return p.Segments[i].setpoint(tau), true
}

// Stop returns a stop segment.
func Stop(d float64) Segment { return Segment{Kind: KindStop, Duration: d} }

// Hold returns a hold segment.
func Hold(at Point, d float64) Segment { return Segment{Kind: KindHold, At: at, Duration: d} }

// Ramp returns a ramp segment.
func Ramp(from, to Point, speed float64) Segment {
	return Segment{Kind: KindRamp, From: from, To: to, Speed: speed}
}
