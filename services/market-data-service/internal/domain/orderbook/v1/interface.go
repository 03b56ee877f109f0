package orderbookv1

import (
	"context"

	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
)

// Usecase answers point-in-time and historical order book queries.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderbookv1_mock
type Usecase interface {
	GetLatestTick(ctx context.Context, instrumentID string) (*tickv1.Tick, error)
	// GetOrderBook builds a snapshot from the latest tick. A depth of 0 uses the
	// instrument's configured level.
	GetOrderBook(ctx context.Context, instrumentID string, depth int) (*Snapshot, error)
	GetPriceHistory(ctx context.Context, instrumentID string, count int) ([]PricePoint, error)
	GetHistoricalTicks(ctx context.Context, instrumentID string, query HistoryQuery) ([]*tickv1.Tick, error)
	GetMultipleInstruments(ctx context.Context, instrumentIDs []string) map[string]InstrumentResult
}
