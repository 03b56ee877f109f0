package sinkv1

import (
	"context"

	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
)

// TickSink receives every tick after it has been appended to the stream store.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=sinkv1_mock
type TickSink interface {
	Name() string
	Consume(ctx context.Context, tick *tickv1.Tick) error
}
