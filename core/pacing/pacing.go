// Package pacing provides rate-limited tracking of a target value for
// control loops. A limiter holds a current value and a target value
// and, on each advance, moves the value toward the target by no more
// than the configured per-update limits. Typical use is smoothing a
// motor speed, LED brightness, or servo position command.
package pacing

import (
	"example.com/step-limit/base/timebase"
)

// Pacer is the capability shared by both limiter variants.
type Pacer interface {
	Advance(now uint64) int
	AdvanceNow(clk timebase.MillisClock) int
	Value() int
	Target() int
	SetTarget(target int)
	TargetReached() bool
}

// limiterState is the state and accessor surface shared by both
// limiter variants. The meaning of maxFalling and maxRising differs
// per variant; each variant owns its SetLimits and Advance.
type limiterState struct {
	enabled    bool
	maxFalling int
	maxRising  int
	period     uint64
	lastUpdate uint64
	armed      bool
	value      int
	target     int
}

// Begin resets the limiter to its initial state: enabled, no limits,
// no period, value and target at zero, awaiting its first tick.
// Idempotent; call before first use.
func (s *limiterState) Begin() {
	s.enabled = true
	s.maxFalling = 0
	s.maxRising = 0
	s.period = 0
	s.lastUpdate = 0
	s.armed = false
	s.value = 0
	s.target = 0
}

// SetPeriod sets the minimum number of milliseconds between value
// updates. A period of 0 updates the value on every advance.
func (s *limiterState) SetPeriod(period uint64) {
	s.period = period
}

func (s *limiterState) Value() int {
	return s.value
}

func (s *limiterState) SetValue(value int) {
	s.value = value
}

func (s *limiterState) Target() int {
	return s.target
}

func (s *limiterState) SetTarget(target int) {
	s.target = target
}

func (s *limiterState) Enabled() bool {
	return s.enabled
}

// SetEnabled toggles bypass mode. While disabled, advancing snaps the
// value to the target immediately with no pacing.
func (s *limiterState) SetEnabled(enabled bool) {
	s.enabled = enabled
}

func (s *limiterState) TargetReached() bool {
	return s.value == s.target
}

// due reports whether the value may move at time now and records the
// update time if so. The first advance after Begin only arms the
// limiter; it moves the value immediately only when period is 0.
func (s *limiterState) due(now uint64) bool {
	if !s.armed {
		s.lastUpdate = now
		s.armed = true
	}
	// now - lastUpdate is modular, so a wrapping clock still yields a
	// valid elapsed duration as long as period fits within the
	// wraparound window.
	if s.period == 0 || now-s.lastUpdate >= s.period {
		s.lastUpdate = now
		return true
	}
	return false
}
