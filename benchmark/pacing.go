package benchmark

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"example.com/step-limit/base/intmath"
	"example.com/step-limit/core/pacing"
)

// RunPacingBenchmark measures the latency of Advance across many
// goroutine-local limiters bouncing between two targets.
func RunPacingBenchmark(log *slog.Logger) {
	const numGoroutine = 8
	const numAdvancePerGoroutine = 1_000_000
	const histMin, histMax = 1, 50_000 // nanoseconds

	ctx := context.Background()
	dlog := slog.New(slog.NewTextHandler(io.Discard, nil))

	var mu sync.Mutex
	sg := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(numGoroutine)
	hg := hdrhistogram.New(histMin, histMax, 5)

	for i := 0; i < numGoroutine; i++ {
		go func() {
			h := hdrhistogram.New(histMin, histMax, 5)

			var l pacing.AbsoluteStepLimiter
			l.Begin()
			l.SetLimits(10, 100)
			l.SetValue(-34)
			l.SetTarget(130)

			defer wg.Done()
			<-sg

			var now uint64
			for j := 0; j < numAdvancePerGoroutine; j++ {
				if l.TargetReached() {
					l.SetTarget(-l.Target())
				}
				t0 := time.Now()
				l.Advance(now)
				d := time.Since(t0)
				now++
				err := h.RecordValue(intmath.Clamp(histMin, d.Nanoseconds(), histMax))
				if err != nil {
					dlog.LogAttrs(ctx, slog.LevelInfo,
						"failed to record latency",
						slog.Any("error", err),
					)
				}
			}
			mu.Lock()
			defer mu.Unlock()
			hg.Merge(h)
		}()
	}
	t0 := time.Now()
	close(sg)
	wg.Wait()
	_, _ = hg.PercentilesPrint(os.Stdout, 1, 1.0)
	log.LogAttrs(ctx, slog.LevelInfo, "time elapsed", slog.Duration("duration", time.Since(t0)))
}
