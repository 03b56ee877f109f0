package orderbook

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/muhammadchandra19/marketdepth/pkg/errors"
	"github.com/muhammadchandra19/marketdepth/pkg/logger"
	depthconfigv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/depthconfig/v1"
	orderbookv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/orderbook/v1"
	streamv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/stream/v1"
	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
	"golang.org/x/sync/errgroup"
)

// maxBatchConcurrency bounds the parallel store reads of one multi-instrument query.
const maxBatchConcurrency = 16

// Usecase reads the stream store and derives order book views.
type Usecase struct {
	store    streamv1.Store
	registry depthconfigv1.Registry
	logger   logger.Interface
}

// NewUsecase creates a new order book usecase.
func NewUsecase(store streamv1.Store, registry depthconfigv1.Registry, logger logger.Interface) *Usecase {
	return &Usecase{store: store, registry: registry, logger: logger}
}

// GetLatestTick returns the most recent tick of the instrument.
func (u *Usecase) GetLatestTick(ctx context.Context, instrumentID string) (*tickv1.Tick, error) {
	tick, err := u.store.ReadLatest(ctx, instrumentID)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return tick, nil
}

// GetOrderBook builds a snapshot from the latest tick. When more levels are
// requested than the tick carries, the available levels are returned and the
// snapshot is marked degraded.
func (u *Usecase) GetOrderBook(ctx context.Context, instrumentID string, depth int) (*orderbookv1.Snapshot, error) {
	if depth == 0 {
		depth = u.registry.Get(instrumentID)
	}
	if !tickv1.ValidDepth(depth) {
		return nil, tickv1.ErrInvalidDepthLevel(depth)
	}

	tick, err := u.store.ReadLatest(ctx, instrumentID)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	return BuildSnapshot(tick, depth), nil
}

// BuildSnapshot derives the ranked levels and analytics of a tick.
func BuildSnapshot(tick *tickv1.Tick, requestedDepth int) *orderbookv1.Snapshot {
	levels := min(requestedDepth, tick.DepthLevel)

	snapshot := &orderbookv1.Snapshot{
		InstrumentID:   tick.InstrumentID,
		Timestamp:      tick.Timestamp,
		LastPrice:      tick.LastPrice,
		Volume:         tick.Volume,
		DepthLevel:     tick.DepthLevel,
		RequestedDepth: requestedDepth,
		Degraded:       requestedDepth > tick.DepthLevel,
	}
	snapshot.Bids, snapshot.TotalBidQuantity = rankLevels(tick.BidPrices, tick.BidQuantities, levels)
	snapshot.Asks, snapshot.TotalAskQuantity = rankLevels(tick.AskPrices, tick.AskQuantities, levels)

	bestBid, _ := tick.BestBid()
	bestAsk, _ := tick.BestAsk()
	if bestBid > 0 && bestAsk > 0 {
		snapshot.Spread = bestAsk - bestBid
		if tick.LastPrice > 0 {
			snapshot.SpreadPct = snapshot.Spread / tick.LastPrice
		}
	}
	snapshot.Imbalance = Imbalance(snapshot.TotalBidQuantity, snapshot.TotalAskQuantity)

	return snapshot
}

// rankLevels returns the first n levels with running cumulative quantity and the side total.
func rankLevels(prices []float64, quantities []int64, n int) ([]orderbookv1.BookLevel, int64) {
	n = min(n, len(prices), len(quantities))
	levels := make([]orderbookv1.BookLevel, 0, n)

	var cumulative int64
	for i := range n {
		cumulative += quantities[i]
		levels = append(levels, orderbookv1.BookLevel{
			Level:      i + 1,
			Price:      prices[i],
			Quantity:   quantities[i],
			Cumulative: cumulative,
		})
	}
	return levels, cumulative
}

// Imbalance is (bid - ask) / (bid + ask), clamped to [-1, 1] and 0 when both are zero.
func Imbalance(totalBid, totalAsk int64) float64 {
	total := totalBid + totalAsk
	if total == 0 {
		return 0
	}
	imbalance := float64(totalBid-totalAsk) / float64(total)
	return max(-1, min(1, imbalance))
}

// GetPriceHistory returns up to count recent points, oldest first. A short or
// absent history is not an error.
func (u *Usecase) GetPriceHistory(ctx context.Context, instrumentID string, count int) ([]orderbookv1.PricePoint, error) {
	if count <= 0 {
		count = orderbookv1.DefaultHistoryCount
	}

	ticks, err := u.store.ReadRange(ctx, instrumentID, streamv1.Range{LastN: count})
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	points := make([]orderbookv1.PricePoint, 0, len(ticks))
	for _, tick := range ticks {
		bid, _ := tick.BestBid()
		ask, _ := tick.BestAsk()
		points = append(points, orderbookv1.PricePoint{
			Timestamp: tick.Timestamp,
			BestBid:   bid,
			BestAsk:   ask,
			LastPrice: tick.LastPrice,
			Volume:    tick.Volume,
		})
	}
	return points, nil
}

// GetHistoricalTicks returns ticks within [Start, End], limited to the most recent Count.
func (u *Usecase) GetHistoricalTicks(ctx context.Context, instrumentID string, query orderbookv1.HistoryQuery) ([]*tickv1.Tick, error) {
	if query.Start != nil && query.End != nil && query.End.Before(*query.Start) {
		return nil, errors.NewErrorDetails(
			fmt.Sprintf("end %s is before start %s", query.End, query.Start),
			errors.GeneralBadRequestError.String(),
			"end",
		)
	}
	if query.Count <= 0 {
		query.Count = orderbookv1.DefaultHistoryCount
	}

	ticks, err := u.store.ReadRange(ctx, instrumentID, streamv1.Range{
		Since: query.Start,
		Until: query.End,
		LastN: query.Count,
	})
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	if ticks == nil {
		ticks = []*tickv1.Tick{}
	}
	return ticks, nil
}

// GetMultipleInstruments reads the latest tick of each instrument in parallel.
// Every requested key is present in the result, carrying a summary or an error.
func (u *Usecase) GetMultipleInstruments(ctx context.Context, instrumentIDs []string) map[string]orderbookv1.InstrumentResult {
	ids := slices.Compact(slices.Sorted(slices.Values(instrumentIDs)))
	results := make(map[string]orderbookv1.InstrumentResult, len(ids))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxBatchConcurrency)

	for _, id := range ids {
		g.Go(func() error {
			result := u.summarize(gctx, id)

			mu.Lock()
			results[id] = result
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (u *Usecase) summarize(ctx context.Context, instrumentID string) orderbookv1.InstrumentResult {
	tick, err := u.store.ReadLatest(ctx, instrumentID)
	if err != nil {
		code := errors.CodeOf(err)
		if code == "" {
			code = errors.GeneralInternalServerError.String()
		}
		if !tickv1.IsNotFound(err) {
			u.logger.ErrorContext(ctx, errors.TracerFromError(err), logger.NewField("instrument_id", instrumentID))
		}
		return orderbookv1.InstrumentResult{
			Error: &orderbookv1.ResultError{Code: code, Message: err.Error()},
		}
	}

	bidPrice, bidQuantity := tick.BestBid()
	askPrice, askQuantity := tick.BestAsk()
	return orderbookv1.InstrumentResult{
		Summary: &orderbookv1.Summary{
			InstrumentID: tick.InstrumentID,
			Timestamp:    tick.Timestamp,
			LastPrice:    tick.LastPrice,
			Volume:       tick.Volume,
			DepthLevel:   tick.DepthLevel,
			BidPrice:     bidPrice,
			BidQuantity:  bidQuantity,
			AskPrice:     askPrice,
			AskQuantity:  askQuantity,
		},
	}
}
