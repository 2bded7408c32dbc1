package controller

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/flowctl/internal/estimator"
)

// ParamGroup is the name of the runtime parameter group.
const ParamGroup = "lqrpar"

// Parameter names.
const (
	ParamUseObserver   = "use_observer"
	ParamResetObserver = "reset_observer"
)

// ErrUnknownParam is returned by SetParam for names outside the group.
var ErrUnknownParam = errors.New("controller: unknown parameter")

// Params exposes the estimator flags as numeric parameters, the way a ground
// station tunes them: any non-zero value is true. Writing reset_observer arms
// a one-shot reset that the next executed tick consumes.
type Params struct {
	flags *estimator.Flags
}

func (p *Params) GetParams() map[string]float64 {
	return map[string]float64{
		ParamUseObserver:   boolValue(p.flags.UseObserver()),
		ParamResetObserver: boolValue(p.flags.ResetPending()),
	}
}

func (p *Params) SetParam(name string, value float64) error {
	switch name {
	case ParamUseObserver:
		p.flags.SetUseObserver(value != 0)
	case ParamResetObserver:
		if value != 0 {
			p.flags.RequestReset()
		}
	default:
		return fmt.Errorf("%w: %s.%s", ErrUnknownParam, ParamGroup, name)
	}
	return nil
}

// Names returns the parameter names in sorted order.
func (p *Params) Names() []string {
	names := []string{ParamUseObserver, ParamResetObserver}
	sort.Strings(names)
	return names
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
