package bootstrap

import (
	"github.com/muhammadchandra19/marketdepth/pkg/backoff"
	archivev1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/archive/v1"
	depthconfigv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/depthconfig/v1"
	feedv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/feed/v1"
	normalizerv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/normalizer/v1"
	orderbookv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/orderbook/v1"
	sinkv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/sink/v1"
	archiveUc "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/usecase/archive"
	depthconfigUc "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/usecase/depthconfig"
	feedUc "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/usecase/feed"
	normalizerUc "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/usecase/normalizer"
	orderbookUc "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/usecase/orderbook"
)

// Usecase is the usecase for the market data service.
type Usecase struct {
	DepthRegistry    depthconfigv1.Registry
	Normalizer       normalizerv1.Normalizer
	OrderBookUsecase orderbookv1.Usecase
	ArchiveUsecase   archivev1.Usecase
	Ingestor         feedv1.Ingestor
}

// registerUsecase registers the usecase.
func (b *Bootstrap) registerUsecase() error {
	registry, err := depthconfigUc.NewRegistry(b.Feed.DefaultDepth, b.Logger)
	if err != nil {
		return err
	}
	policy, err := normalizerv1.ParsePaddingPolicy(b.Feed.PaddingPolicy)
	if err != nil {
		return err
	}

	b.Usecase.DepthRegistry = registry
	b.Usecase.Normalizer = normalizerUc.NewNormalizer(registry, normalizerUc.Config{
		Policy:              policy,
		ReceiptTimeFallback: b.Feed.ReceiptTimeFallback,
	})
	b.Usecase.OrderBookUsecase = orderbookUc.NewUsecase(b.Repository.Store, registry, b.Logger)

	var sinks []sinkv1.TickSink
	if b.Repository.Publisher != nil {
		sinks = append(sinks, b.Repository.Publisher)
	}
	if b.Repository.TickRepository != nil {
		archive := archiveUc.NewUsecase(b.Repository.TickRepository)
		b.Usecase.ArchiveUsecase = archive
		sinks = append(sinks, archive)
	}

	b.Usecase.Ingestor = feedUc.NewIngestor(
		b.Dialer,
		b.Usecase.Normalizer,
		registry,
		b.Repository.Store,
		b.Logger,
		feedUc.Config{
			QueueSize:        b.Feed.QueueSize,
			EnqueueWait:      b.Feed.EnqueueWait,
			MaxSubscriptions: b.Feed.MaxSubscriptions,
			SinkTimeout:      b.Feed.SinkTimeout,
			Backoff: backoff.Backoff{
				Base:   b.Feed.BackoffBase,
				Max:    b.Feed.BackoffMax,
				Factor: 2,
				Jitter: b.Feed.BackoffJitter,
			},
		},
		sinks...,
	)
	return nil
}
