package backoff

import (
	"context"
	"math/rand/v2"
	"time"
)

// Backoff computes bounded exponential delays with symmetric jitter.
type Backoff struct {
	Base   time.Duration `env:"BASE" envDefault:"1s"`
	Max    time.Duration `env:"MAX" envDefault:"30s"`
	Factor float64       `env:"FACTOR" envDefault:"2"`
	// Jitter is the fraction of the delay randomised in both directions, 0..1.
	Jitter float64 `env:"JITTER" envDefault:"0.2"`
}

// Default returns the reconnect policy used by the upstream feed.
func Default() Backoff {
	return Backoff{
		Base:   time.Second,
		Max:    30 * time.Second,
		Factor: 2,
		Jitter: 0.2,
	}
}

// Next returns the delay for the given attempt (1-based). The result never
// exceeds Max, jitter included.
func (b Backoff) Next(attempt int) time.Duration {
	if attempt <= 0 {
		attempt = 1
	}
	base := b.Base
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	maxDelay := b.Max
	if maxDelay < base {
		maxDelay = base
	}
	factor := b.Factor
	if factor <= 1 {
		factor = 2
	}

	wait := base
	for i := 1; i < attempt; i++ {
		next := time.Duration(float64(wait) * factor)
		if next >= maxDelay || next <= 0 {
			wait = maxDelay
			break
		}
		wait = next
	}

	jitter := min(b.Jitter, 1)
	if jitter <= 0 {
		return wait
	}
	delta := float64(wait) * jitter
	wait = wait - time.Duration(delta) + time.Duration(rand.Float64()*2*delta)
	return min(wait, maxDelay)
}

// Sleep waits for the attempt's delay. It returns false if ctx ends first.
func (b Backoff) Sleep(ctx context.Context, attempt int) bool {
	return Wait(ctx, b.Next(attempt))
}

// Wait blocks for d. It returns false if ctx ends first.
func Wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
