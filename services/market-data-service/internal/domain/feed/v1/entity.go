package feedv1

import (
	"fmt"

	"github.com/muhammadchandra19/marketdepth/pkg/errors"
	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
)

// State of the upstream session.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateSubscribed   State = "subscribed"
	StateStreaming    State = "streaming"
)

// Mode is the upstream subscription mode.
type Mode string

const (
	// ModeQuote delivers the best level only.
	ModeQuote Mode = "quote"
	// ModeFull delivers five levels of depth.
	ModeFull Mode = "full"
)

// ModeFor maps a depth level to the subscription mode that carries it.
func ModeFor(depthLevel int) Mode {
	if depthLevel == tickv1.DepthLevel5 {
		return ModeFull
	}
	return ModeQuote
}

// Stats are cumulative ingestion counters since process start.
type Stats struct {
	Received     uint64 `json:"received"`
	Accepted     uint64 `json:"accepted"`
	Padded       uint64 `json:"padded"`
	Truncated    uint64 `json:"truncated"`
	Malformed    uint64 `json:"malformed"`
	AppendFailed uint64 `json:"append_failed"`
	Dropped      uint64 `json:"dropped"`
	SinkFailed   uint64 `json:"sink_failed"`
	Reconnects   uint64 `json:"reconnects"`
}

// Status is a point-in-time view of the ingestor.
type Status struct {
	State         State          `json:"state"`
	Stats         Stats          `json:"stats"`
	Subscriptions map[string]int `json:"subscriptions"`
}

// ErrSubscriptionLimit is returned when a subscribe call would exceed the upstream limit.
func ErrSubscriptionLimit(limit, requested int) error {
	return errors.NewErrorDetails(
		fmt.Sprintf("subscribing would hold %d instruments, limit is %d", requested, limit),
		errors.SubscriptionLimitError.String(),
		"instrument_ids",
	)
}

// ErrNotConnected is returned by control operations that need a live session.
func ErrNotConnected() error {
	return errors.NewErrorDetails("upstream feed is not connected", errors.FeedNotConnectedError.String(), "")
}

// ErrQueueFull is recorded when a frame is dropped because the ingestion queue stayed full.
func ErrQueueFull() error {
	return errors.NewErrorDetails("ingestion queue is full, frame dropped", errors.QueueFullError.String(), "")
}
