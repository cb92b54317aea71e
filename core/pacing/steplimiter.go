package pacing

import (
	"example.com/step-limit/base/intmath"
	"example.com/step-limit/base/timebase"
)

// StepLimiter bounds the signed per-update change of the value:
// maxFalling restricts the delta if it is below zero, maxRising
// restricts it if it is above zero.
//
// Example: maxFalling = -10, maxRising = 100, value = -34,
// target = 130 yields -34, 66, 130.
type StepLimiter struct {
	limiterState
}

// SetLimit bounds rising and falling updates symmetrically to
// ±|maxChange|.
func (l *StepLimiter) SetLimit(maxChange int) {
	l.SetLimits(maxChange, maxChange)
}

// SetLimits bounds falling and rising updates independently. Either
// argument may carry any sign; maxFalling is stored as -|maxFalling|
// and maxRising as |maxRising|. A limit of zero allows no change in
// that direction.
func (l *StepLimiter) SetLimits(maxFalling, maxRising int) {
	l.maxFalling = -intmath.Abs(maxFalling)
	l.maxRising = intmath.Abs(maxRising)
}

// Advance moves the value one bounded step toward the target, given
// the current time in milliseconds, and returns the possibly updated
// value. While the limiter is disabled the value snaps to the target
// with no time bookkeeping.
func (l *StepLimiter) Advance(now uint64) int {
	if !l.enabled {
		l.value = l.target
		return l.value
	}
	if !l.due(now) {
		return l.value
	}
	delta := l.target - l.value
	switch {
	case delta > 0 && delta > l.maxRising:
		l.value += l.maxRising
	case delta < 0 && delta < l.maxFalling:
		l.value += l.maxFalling
	default:
		l.value += delta
	}
	return l.value
}

// AdvanceNow is Advance at clk's current time.
func (l *StepLimiter) AdvanceNow(clk timebase.MillisClock) int {
	return l.Advance(clk.Now())
}
