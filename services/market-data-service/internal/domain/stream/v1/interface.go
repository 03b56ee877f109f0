package streamv1

import (
	"context"

	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
)

// Store is an append-only, per-instrument capped log of ticks.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=streamv1_mock
type Store interface {
	// Append stores the tick and evicts the oldest entries above the cap for
	// the tick's depth level. It returns the entry's sequence number.
	Append(ctx context.Context, tick *tickv1.Tick) (uint64, error)
	ReadLatest(ctx context.Context, instrumentID string) (*tickv1.Tick, error)
	// ReadRange returns the selected ticks oldest first. An unknown instrument yields no ticks.
	ReadRange(ctx context.Context, instrumentID string, r Range) ([]*tickv1.Tick, error)
	Len(ctx context.Context, instrumentID string) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}
