package hrtime

import (
	"time"
)

var goMonotonicStartTime time.Time

// goMonotonicClock relies on the monotonic reading carried by time.Time.
type goMonotonicClock struct{}

func (g *goMonotonicClock) MonotonicElapsed() time.Duration {
	return time.Since(goMonotonicStartTime)
}
