//go:build !linux

package clocks

import (
	"time"
)

// Monotonic reads the system monotonic clock, in milliseconds since an
// arbitrary epoch.
type Monotonic struct{}

var epoch = time.Now()

func (Monotonic) Now() uint64 {
	return uint64(time.Since(epoch).Milliseconds())
}
