package clocks

import (
	"testing"
)

func TestMonotonicNonDecreasing(t *testing.T) {
	var c Monotonic
	prev := c.Now()
	for i := 0; i < 1_000; i++ {
		now := c.Now()
		if now < prev {
			t.Fatalf("clock went backwards: %d after %d", now, prev)
		}
		prev = now
	}
}
