package hrtime

import "time"

// Clock reads a monotonic clock, the wall clock adjustments never move it.
type Clock interface {
	MonotonicElapsed() time.Duration
}
