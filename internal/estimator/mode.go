package estimator

import "github.com/san-kum/flowctl/internal/flight"

type modeKind uint8

const (
	kindPassThrough modeKind = iota
	kindObserver
)

// Mode selects the estimation strategy for one tick.
type Mode struct {
	kind     modeKind
	external flight.ExternalEstimate
}

// PassThrough selects the external estimate as this tick's state source.
func PassThrough(ext flight.ExternalEstimate) Mode {
	return Mode{kind: kindPassThrough, external: ext}
}

// Observe selects the internal observer.
func Observe() Mode {
	return Mode{kind: kindObserver}
}

func (m Mode) IsObserver() bool { return m.kind == kindObserver }

// External returns the estimate carried by a pass-through mode.
func (m Mode) External() (flight.ExternalEstimate, bool) {
	return m.external, m.kind == kindPassThrough
}

func (m Mode) String() string {
	if m.kind == kindObserver {
		return "observer"
	}
	return "pass-through"
}
