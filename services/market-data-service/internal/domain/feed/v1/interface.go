package feedv1

import (
	"context"
)

// Ingestor owns the upstream session and feeds normalized ticks into the stream store.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=feedv1_mock
type Ingestor interface {
	// Run connects, streams and reconnects until ctx is done.
	Run(ctx context.Context) error
	Subscribe(ctx context.Context, instrumentIDs []string, depthLevel int) error
	Unsubscribe(ctx context.Context, instrumentIDs []string) error
	SetDepthLevel(ctx context.Context, instrumentID string, depthLevel int) error
	Status() Status
}

// Dialer opens upstream sessions.
type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}

// Conn is one upstream session. ReadFrame is called from a single goroutine;
// the control methods may be called concurrently with it.
type Conn interface {
	Subscribe(ctx context.Context, instrumentIDs []string, mode Mode) error
	Unsubscribe(ctx context.Context, instrumentIDs []string) error
	// ReadFrame blocks for the next data frame. Heartbeats are not returned.
	ReadFrame(ctx context.Context) ([]byte, error)
	Close() error
}
