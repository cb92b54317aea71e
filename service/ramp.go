package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"example.com/step-limit/base/timebase"
	"example.com/step-limit/core/metrics"
	"example.com/step-limit/core/pacing"
)

type rampMetrics struct {
	steps          prometheus.Counter
	targetsReached prometheus.Counter
	value          prometheus.Gauge
}

var (
	rampMetricsOnce sync.Once
	rampMtrcs       *rampMetrics
)

func newRampMetrics() *rampMetrics {
	rampMetricsOnce.Do(func() {
		rampMtrcs = &rampMetrics{
			steps: promauto.NewCounter(prometheus.CounterOpts{
				Name: metrics.RampStepsN,
				Help: metrics.RampStepsH,
			}),
			targetsReached: promauto.NewCounter(prometheus.CounterOpts{
				Name: metrics.RampTargetsReachedN,
				Help: metrics.RampTargetsReachedH,
			}),
			value: promauto.NewGauge(prometheus.GaugeOpts{
				Name: metrics.RampValueN,
				Help: metrics.RampValueH,
			}),
		}
	})
	return rampMtrcs
}

// Ramp drives a Pacer through a sequence of targets, advancing it once
// per Interval on Clock's timeline. The caller owns the Pacer
// exclusively for the duration of Run.
type Ramp struct {
	Log      *slog.Logger
	Clock    timebase.MillisClock
	Pacer    pacing.Pacer
	Interval time.Duration
	Targets  []int
}

// Run feeds each target to the pacer in turn and advances until the
// target is reached, then moves on. It returns once all targets have
// been reached or ctx is canceled. A pacer configured with a zero
// limit in the required direction never reaches its target; guard ctx
// with a deadline if that configuration is possible.
func (r *Ramp) Run(ctx context.Context) {
	mtrcs := newRampMetrics()
	for _, target := range r.Targets {
		r.Pacer.SetTarget(target)
		for !r.Pacer.TargetReached() {
			if ctx.Err() != nil {
				return
			}
			v := r.Pacer.AdvanceNow(r.Clock)
			mtrcs.steps.Inc()
			mtrcs.value.Set(float64(v))
			r.Log.LogAttrs(ctx, slog.LevelDebug, "ramp step",
				slog.Int("value", v), slog.Int("target", target))
			if r.Interval != 0 {
				time.Sleep(r.Interval)
			}
		}
		mtrcs.targetsReached.Inc()
		r.Log.LogAttrs(ctx, slog.LevelInfo, "ramp target reached",
			slog.Int("target", target))
	}
}
