//go:build linux

package clocks

import (
	"golang.org/x/sys/unix"
)

// Monotonic reads the system monotonic clock, in milliseconds since an
// arbitrary epoch.
type Monotonic struct{}

func (Monotonic) Now() uint64 {
	var ts unix.Timespec
	err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts)
	if err != nil {
		panic(err)
	}
	return uint64(ts.Sec)*1_000 + uint64(ts.Nsec)/1_000_000
}
