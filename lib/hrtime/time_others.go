//go:build windows
// +build windows

package hrtime

import (
	"time"
)

var (
	GoMonotonicClock Clock = &goMonotonicClock{}
	DefaultClock           = GoMonotonicClock
)

func init() {
	goMonotonicStartTime = time.Now()
}

// Resolution of the runtime monotonic clock on Windows.
func Resolution() time.Duration {
	return 100 * time.Nanosecond
}
