package flightsim

import (
	"context"
	"time"
)

// pacer holds simulated time to the wall clock.
type pacer struct {
	start time.Time
}

func newPacer() *pacer {
	return &pacer{start: time.Now()}
}

// wait blocks until simT seconds of wall time have passed since start.
func (p *pacer) wait(ctx context.Context, simT float64) error {
	ahead := time.Duration(simT*float64(time.Second)) - time.Since(p.start)
	if ahead <= 0 {
		return nil
	}
	timer := time.NewTimer(ahead)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
