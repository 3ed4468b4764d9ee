//go:build !windows
// +build !windows

package hrtime

import (
	"time"

	"github.com/samber/lo"
	"golang.org/x/sys/unix"
)

var (
	GoMonotonicClock     Clock = &goMonotonicClock{}
	UnixMonotonicClock   Clock = &unixMonotonicClock{}
	DefaultClock               = UnixMonotonicClock
	unixMonotonicStartTs int64
)

func init() {
	goMonotonicStartTime = time.Now()
	ts := unix.Timespec{}
	lo.Must0(unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts))
	unixMonotonicStartTs = ts.Nano()
}

type unixMonotonicClock struct{}

func (u *unixMonotonicClock) MonotonicElapsed() time.Duration {
	ts := unix.Timespec{}
	lo.Must0(unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts))
	return time.Duration(ts.Nano() - unixMonotonicStartTs)
}

// Resolution reports the CLOCK_MONOTONIC resolution.
func Resolution() time.Duration {
	res := unix.Timespec{}
	if err := unix.ClockGetres(unix.CLOCK_MONOTONIC, &res); err != nil {
		return time.Microsecond
	}
	return time.Duration(res.Nano())
}
