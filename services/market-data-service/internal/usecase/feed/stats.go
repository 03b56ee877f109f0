package feed

import (
	"sync/atomic"

	feedv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/feed/v1"
)

type counters struct {
	received     atomic.Uint64
	accepted     atomic.Uint64
	padded       atomic.Uint64
	truncated    atomic.Uint64
	malformed    atomic.Uint64
	appendFailed atomic.Uint64
	dropped      atomic.Uint64
	sinkFailed   atomic.Uint64
	reconnects   atomic.Uint64
}

func (c *counters) snapshot() feedv1.Stats {
	return feedv1.Stats{
		Received:     c.received.Load(),
		Accepted:     c.accepted.Load(),
		Padded:       c.padded.Load(),
		Truncated:    c.truncated.Load(),
		Malformed:    c.malformed.Load(),
		AppendFailed: c.appendFailed.Load(),
		Dropped:      c.dropped.Load(),
		SinkFailed:   c.sinkFailed.Load(),
		Reconnects:   c.reconnects.Load(),
	}
}
