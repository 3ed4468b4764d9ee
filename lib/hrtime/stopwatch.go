package hrtime

import (
	"time"
)

// Stopwatch measures the laps of a single goroutine.
type Stopwatch struct {
	clock Clock
	start time.Duration
	last  time.Duration
}

// NewStopwatch starts at once. A nil clock means DefaultClock.
func NewStopwatch(clock Clock) *Stopwatch {
	if clock == nil {
		clock = DefaultClock
	}
	sw := &Stopwatch{clock: clock}
	sw.Reset()
	return sw
}

// Update returns the time since the previous Update (or the start)
// and starts the next lap.
func (sw *Stopwatch) Update() time.Duration {
	now := sw.clock.MonotonicElapsed()
	lap := now - sw.last
	sw.last = now
	return lap
}

// Total returns the time since the start, the current lap is kept.
func (sw *Stopwatch) Total() time.Duration {
	return sw.clock.MonotonicElapsed() - sw.start
}

func (sw *Stopwatch) Reset() {
	sw.start = sw.clock.MonotonicElapsed()
	sw.last = sw.start
}
