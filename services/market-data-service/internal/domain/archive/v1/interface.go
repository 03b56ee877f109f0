package archivev1

import (
	"context"
	"time"

	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
)

// Usecase archives ticks for long-term storage and serves archive queries.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=archivev1_mock
type Usecase interface {
	Name() string
	Consume(ctx context.Context, tick *tickv1.Tick) error
	GetTicks(ctx context.Context, filter Filter) ([]*tickv1.Tick, error)
}

// Filter selects archived ticks. Start and End are inclusive.
type Filter struct {
	InstrumentID string
	Start        *time.Time
	End          *time.Time
	Limit        int
}
