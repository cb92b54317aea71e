package pacing

import (
	"example.com/step-limit/base/intmath"
	"example.com/step-limit/base/timebase"
)

// AbsoluteStepLimiter bounds per-update change in the magnitude
// domain: maxFalling restricts motion of the value toward zero,
// maxRising restricts motion toward the target's magnitude. When value
// and target have opposite signs the value first descends to zero at
// the falling rate and then rises toward the target.
//
// Example: maxFalling = 10, maxRising = 100, value = -34,
// target = 130 yields -34, -24, -14, -4, 0, 100, 130.
type AbsoluteStepLimiter struct {
	limiterState
}

// SetLimit bounds updates toward zero and toward the target magnitude
// symmetrically to |maxChange|.
func (l *AbsoluteStepLimiter) SetLimit(maxChange int) {
	l.SetLimits(maxChange, maxChange)
}

// SetLimits bounds updates toward zero (maxFalling) and toward the
// target magnitude (maxRising) independently. Either argument may
// carry any sign; both are stored as non-negative magnitudes.
func (l *AbsoluteStepLimiter) SetLimits(maxFalling, maxRising int) {
	l.maxFalling = intmath.Abs(maxFalling)
	l.maxRising = intmath.Abs(maxRising)
}

// Advance moves the value one bounded step along the pass-through-zero
// trajectory toward the target, given the current time in
// milliseconds, and returns the possibly updated value.
func (l *AbsoluteStepLimiter) Advance(now uint64) int {
	if !l.enabled {
		l.value = l.target
		return l.value
	}
	if !l.due(now) {
		return l.value
	}
	if intmath.Sign(l.target)*intmath.Sign(l.value) == -1 {
		// Opposite signs: the value must make a zero pass first and is
		// treated as falling.
		if intmath.Abs(l.value) <= l.maxFalling {
			l.value = 0
		} else {
			l.value -= intmath.Sign(l.value) * l.maxFalling
		}
		return l.value
	}
	delta := intmath.Abs(l.target) - intmath.Abs(l.value)
	// OR keeps whichever sign is nonzero; the opposite-signs case is
	// excluded above, so the operands never conflict.
	dir := intmath.Sign(l.value) | intmath.Sign(l.target)
	switch {
	case delta > 0 && delta > l.maxRising:
		l.value += dir * l.maxRising
	case delta < 0 && intmath.Abs(delta) > l.maxFalling:
		l.value -= dir * l.maxFalling
	default:
		l.value += dir * delta
	}
	return l.value
}

// AdvanceNow is Advance at clk's current time.
func (l *AbsoluteStepLimiter) AdvanceNow(clk timebase.MillisClock) int {
	return l.Advance(clk.Now())
}
