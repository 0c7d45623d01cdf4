package db

import (
	"context"
	"math/rand"
	"time"
)

// Delay suspends a store operation to emulate I/O latency.
// It returns ctx.Err() if the context ends first.
type Delay func(ctx context.Context) error

// Default latency window of the simulated backend
const (
	DefaultMinLatency = 100 * time.Millisecond
	DefaultMaxLatency = 600 * time.Millisecond
)

// NoDelay completes immediately; use it in tests
func NoDelay(ctx context.Context) error {
	return ctx.Err()
}

// FixedDelay always waits for d
func FixedDelay(d time.Duration) Delay {
	return func(ctx context.Context) error {
		return sleep(ctx, d)
	}
}

// RandomDelay waits for a uniformly random duration in [min, max]
func RandomDelay(min, max time.Duration) Delay {
	if max < min {
		min, max = max, min
	}
	if min < 0 {
		min = 0
	}
	return func(ctx context.Context) error {
		d := min
		if span := max - min; span > 0 {
			d += time.Duration(rand.Int63n(int64(span + 1)))
		}
		return sleep(ctx, d)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
