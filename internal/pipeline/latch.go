package pipeline

import "sync/atomic"

// latch is a one-shot stage-entry guard. TryAcquire returns true for exactly
// one caller, no matter how many attempt it or from how many goroutines, so a
// stage body runs at most once per pipeline instance.
type latch struct {
	fired atomic.Bool
}

func (l *latch) TryAcquire() bool {
	return l.fired.CompareAndSwap(false, true)
}
