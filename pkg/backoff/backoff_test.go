package backoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff_Next(t *testing.T) {
	testCases := []struct {
		name    string
		backoff Backoff
		attempt int
		lower   time.Duration
		upper   time.Duration
	}{
		{
			name:    "first attempt without jitter is base",
			backoff: Backoff{Base: time.Second, Max: 30 * time.Second, Factor: 2},
			attempt: 1,
			lower:   time.Second,
			upper:   time.Second,
		},
		{
			name:    "grows exponentially",
			backoff: Backoff{Base: time.Second, Max: 30 * time.Second, Factor: 2},
			attempt: 4,
			lower:   8 * time.Second,
			upper:   8 * time.Second,
		},
		{
			name:    "capped at max",
			backoff: Backoff{Base: time.Second, Max: 30 * time.Second, Factor: 2},
			attempt: 20,
			lower:   30 * time.Second,
			upper:   30 * time.Second,
		},
		{
			name:    "jitter stays within band",
			backoff: Backoff{Base: time.Second, Max: 30 * time.Second, Factor: 2, Jitter: 0.2},
			attempt: 2,
			lower:   1600 * time.Millisecond,
			upper:   2400 * time.Millisecond,
		},
		{
			name:    "jitter never exceeds max",
			backoff: Default(),
			attempt: 50,
			lower:   24 * time.Second,
			upper:   30 * time.Second,
		},
		{
			name:    "zero attempt treated as first",
			backoff: Backoff{Base: 500 * time.Millisecond, Max: time.Second, Factor: 2},
			attempt: 0,
			lower:   500 * time.Millisecond,
			upper:   500 * time.Millisecond,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				got := tc.backoff.Next(tc.attempt)
				assert.GreaterOrEqual(t, got, tc.lower)
				assert.LessOrEqual(t, got, tc.upper)
			}
		})
	}
}

func TestBackoff_Sleep(t *testing.T) {
	b := Backoff{Base: time.Hour, Max: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, b.Sleep(ctx, 1))

	short := Backoff{Base: time.Millisecond, Max: time.Millisecond}
	assert.True(t, short.Sleep(context.Background(), 1))
}
