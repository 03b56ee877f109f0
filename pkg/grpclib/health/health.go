package health

import (
	"context"
	"time"

	"google.golang.org/grpc"
	healthgrpc "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Probe reports whether a dependency is usable.
type Probe func(ctx context.Context) error

// Server wraps grpc health server
type Server struct {
	server *healthgrpc.Server
}

// NewServer creates health server using default grpc health server.
func NewServer() *Server {
	return &Server{
		server: healthgrpc.NewServer(),
	}
}

// SetServing marks the service as serving.
func (h *Server) SetServing(serviceName string) {
	h.server.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
}

// SetNotServing marks the service as not serving.
func (h *Server) SetNotServing(serviceName string) {
	h.server.SetServingStatus(serviceName, healthpb.HealthCheckResponse_NOT_SERVING)
}

// Shutdown sets all serving status to NOT_SERVING.
func (h *Server) Shutdown() {
	h.server.Shutdown()
}

// Register registers health server.
func (h *Server) Register(grpc *grpc.Server) {
	healthpb.RegisterHealthServer(grpc, h.server)
}

// Watch runs probe every interval and flips the serving status of
// serviceName and of the overall server ("") accordingly. It blocks until ctx ends.
func (h *Server) Watch(ctx context.Context, serviceName string, interval time.Duration, timeout time.Duration, probe Probe) {
	check := func() {
		probeCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := probe(probeCtx); err != nil {
			h.SetNotServing(serviceName)
			h.SetNotServing("")
			return
		}
		h.SetServing(serviceName)
		h.SetServing("")
	}

	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}
