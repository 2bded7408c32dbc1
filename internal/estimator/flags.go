package estimator

import "sync/atomic"

// Flags are the runtime-tunable switches read once per tick. They may be set
// from any goroutine.
type Flags struct {
	useObserver    atomic.Bool
	resetRequested atomic.Bool
}

func (f *Flags) SetUseObserver(on bool) { f.useObserver.Store(on) }
func (f *Flags) UseObserver() bool      { return f.useObserver.Load() }

// RequestReset arms the one-shot reset for the next tick.
func (f *Flags) RequestReset() { f.resetRequested.Store(true) }

// ResetPending reports whether a reset is armed without consuming it.
func (f *Flags) ResetPending() bool { return f.resetRequested.Load() }

// TakeResetRequest reports whether a reset was requested and clears the
// request in the same operation.
func (f *Flags) TakeResetRequest() bool {
	return f.resetRequested.Swap(false)
}
