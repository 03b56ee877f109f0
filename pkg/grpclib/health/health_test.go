package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestServer_Watch(t *testing.T) {
	testCases := []struct {
		name     string
		probeErr error
		expected healthpb.HealthCheckResponse_ServingStatus
	}{
		{
			name:     "healthy dependency",
			probeErr: nil,
			expected: healthpb.HealthCheckResponse_SERVING,
		},
		{
			name:     "unhealthy dependency",
			probeErr: errors.New("store down"),
			expected: healthpb.HealthCheckResponse_NOT_SERVING,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewServer()
			ctx, cancel := context.WithCancel(context.Background())

			var calls atomic.Int32
			done := make(chan struct{})
			go func() {
				defer close(done)
				h.Watch(ctx, "marketdepth", time.Hour, time.Second, func(ctx context.Context) error {
					calls.Add(1)
					return tc.probeErr
				})
			}()

			assert.Eventually(t, func() bool { return calls.Load() > 0 }, time.Second, 5*time.Millisecond)
			cancel()
			<-done

			res, err := h.server.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "marketdepth"})
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, res.Status)
		})
	}
}
