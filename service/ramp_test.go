package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"example.com/step-limit/core/pacing"
)

type fakeClock struct {
	now uint64
}

func (c *fakeClock) Now() uint64 {
	c.now += 10
	return c.now
}

func TestRampRunsThroughTargets(t *testing.T) {
	var l pacing.StepLimiter
	l.Begin()
	l.SetLimits(5, 5)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r := &Ramp{
		Log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:   &fakeClock{},
		Pacer:   &l,
		Targets: []int{20, -10},
	}
	r.Run(ctx)

	if !l.TargetReached() {
		t.Error("target not reached")
	}
	if got := l.Value(); got != -10 {
		t.Errorf("final value: got %d, want -10", got)
	}
}

func TestRampHonorsLimiterPeriod(t *testing.T) {
	var l pacing.AbsoluteStepLimiter
	l.Begin()
	l.SetLimits(10, 10)
	l.SetPeriod(20)
	l.SetValue(-30)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r := &Ramp{
		Log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:   &fakeClock{},
		Pacer:   &l,
		Targets: []int{30},
	}
	r.Run(ctx)

	if got := l.Value(); got != 30 {
		t.Errorf("final value: got %d, want 30", got)
	}
}

func TestRampStopsOnCanceledContext(t *testing.T) {
	var l pacing.StepLimiter
	l.Begin()
	l.SetLimits(0, 0) // never converges

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Ramp{
		Log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:   &fakeClock{},
		Pacer:   &l,
		Targets: []int{100},
	}
	r.Run(ctx)

	if l.TargetReached() {
		t.Error("unexpectedly reached target")
	}
}
