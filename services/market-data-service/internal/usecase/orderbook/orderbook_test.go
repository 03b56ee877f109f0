package orderbook

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	pkgErrors "github.com/muhammadchandra19/marketdepth/pkg/errors"
	loggerMock "github.com/muhammadchandra19/marketdepth/pkg/logger/mock"
	depthconfigMock "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/depthconfig/v1/mock"
	orderbookv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/orderbook/v1"
	streamv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/stream/v1"
	streamMock "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/stream/v1/mock"
	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ts = time.Date(2025, 7, 1, 9, 15, 0, 0, time.UTC)

func depth1Tick(id string) *tickv1.Tick {
	return &tickv1.Tick{
		InstrumentID:  id,
		Timestamp:     ts,
		LastPrice:     100.25,
		Volume:        1000,
		DepthLevel:    1,
		BidPrices:     []float64{100.0},
		BidQuantities: []int64{30},
		AskPrices:     []float64{100.5},
		AskQuantities: []int64{10},
	}
}

func depth5Tick(id string) *tickv1.Tick {
	return &tickv1.Tick{
		InstrumentID:  id,
		Timestamp:     ts,
		LastPrice:     200,
		Volume:        5000,
		DepthLevel:    5,
		BidPrices:     []float64{199, 198, 197, 196, 195},
		BidQuantities: []int64{1, 2, 3, 4, 5},
		AskPrices:     []float64{201, 202, 203, 204, 205},
		AskQuantities: []int64{5, 5, 5, 5, 5},
	}
}

type mocks struct {
	store    *streamMock.MockStore
	registry *depthconfigMock.MockRegistry
	logger   *loggerMock.MockInterface
}

func newUsecase(t *testing.T) (*Usecase, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		store:    streamMock.NewMockStore(ctrl),
		registry: depthconfigMock.NewMockRegistry(ctrl),
		logger:   loggerMock.NewMockInterface(ctrl),
	}
	return NewUsecase(m.store, m.registry, m.logger), m
}

func TestUsecase_GetOrderBook(t *testing.T) {
	testCases := []struct {
		name         string
		instrumentID string
		depth        int
		mockFn       func(m mocks)
		assertFn     func(t *testing.T, snapshot *orderbookv1.Snapshot, err error)
	}{
		{
			name:         "depth 1 book",
			instrumentID: "X",
			depth:        1,
			mockFn: func(m mocks) {
				m.store.EXPECT().ReadLatest(gomock.Any(), "X").Return(depth1Tick("X"), nil)
			},
			assertFn: func(t *testing.T, snapshot *orderbookv1.Snapshot, err error) {
				require.NoError(t, err)
				assert.InDelta(t, 0.5, snapshot.Spread, 1e-9)
				assert.InDelta(t, 0.5/100.25, snapshot.SpreadPct, 1e-12)
				assert.Len(t, snapshot.Bids, 1)
				assert.Len(t, snapshot.Asks, 1)
				assert.Equal(t, orderbookv1.BookLevel{Level: 1, Price: 100, Quantity: 30, Cumulative: 30}, snapshot.Bids[0])
				assert.InDelta(t, 0.5, snapshot.Imbalance, 1e-9)
				assert.False(t, snapshot.Degraded)
			},
		},
		{
			name:         "depth 5 requested on a depth 1 tick is degraded",
			instrumentID: "X",
			depth:        5,
			mockFn: func(m mocks) {
				m.store.EXPECT().ReadLatest(gomock.Any(), "X").Return(depth1Tick("X"), nil)
			},
			assertFn: func(t *testing.T, snapshot *orderbookv1.Snapshot, err error) {
				require.NoError(t, err)
				assert.True(t, snapshot.Degraded)
				assert.Equal(t, 5, snapshot.RequestedDepth)
				assert.Equal(t, 1, snapshot.DepthLevel)
				assert.Len(t, snapshot.Bids, 1)
				assert.Len(t, snapshot.Asks, 1)
			},
		},
		{
			name:         "depth 5 book with cumulative volume",
			instrumentID: "Y",
			depth:        5,
			mockFn: func(m mocks) {
				m.store.EXPECT().ReadLatest(gomock.Any(), "Y").Return(depth5Tick("Y"), nil)
			},
			assertFn: func(t *testing.T, snapshot *orderbookv1.Snapshot, err error) {
				require.NoError(t, err)
				cumulative := []int64{1, 3, 6, 10, 15}
				for i, level := range snapshot.Bids {
					assert.Equal(t, i+1, level.Level)
					assert.Equal(t, cumulative[i], level.Cumulative)
				}
				assert.Equal(t, int64(25), snapshot.Asks[4].Cumulative)
				assert.Equal(t, int64(15), snapshot.TotalBidQuantity)
				assert.Equal(t, int64(25), snapshot.TotalAskQuantity)
				assert.InDelta(t, -10.0/40.0, snapshot.Imbalance, 1e-9)
				assert.InDelta(t, 2.0, snapshot.Spread, 1e-9)
			},
		},
		{
			name:         "depth 1 view of a depth 5 tick",
			instrumentID: "Y",
			depth:        1,
			mockFn: func(m mocks) {
				m.store.EXPECT().ReadLatest(gomock.Any(), "Y").Return(depth5Tick("Y"), nil)
			},
			assertFn: func(t *testing.T, snapshot *orderbookv1.Snapshot, err error) {
				require.NoError(t, err)
				assert.False(t, snapshot.Degraded)
				assert.Len(t, snapshot.Bids, 1)
				assert.Equal(t, int64(1), snapshot.TotalBidQuantity)
				assert.Equal(t, int64(5), snapshot.TotalAskQuantity)
			},
		},
		{
			name:         "configured depth when none requested",
			instrumentID: "Y",
			depth:        0,
			mockFn: func(m mocks) {
				m.registry.EXPECT().Get("Y").Return(5)
				m.store.EXPECT().ReadLatest(gomock.Any(), "Y").Return(depth5Tick("Y"), nil)
			},
			assertFn: func(t *testing.T, snapshot *orderbookv1.Snapshot, err error) {
				require.NoError(t, err)
				assert.Equal(t, 5, snapshot.RequestedDepth)
				assert.Len(t, snapshot.Asks, 5)
			},
		},
		{
			name:         "invalid depth",
			instrumentID: "X",
			depth:        3,
			mockFn:       func(m mocks) {},
			assertFn: func(t *testing.T, snapshot *orderbookv1.Snapshot, err error) {
				assert.True(t, pkgErrors.ErrorCodeEquals(err, pkgErrors.InvalidDepthLevelError))
				assert.Nil(t, snapshot)
			},
		},
		{
			name:         "not found",
			instrumentID: "Y",
			depth:        1,
			mockFn: func(m mocks) {
				m.store.EXPECT().ReadLatest(gomock.Any(), "Y").Return(nil, tickv1.ErrNotFound("Y"))
			},
			assertFn: func(t *testing.T, snapshot *orderbookv1.Snapshot, err error) {
				assert.True(t, tickv1.IsNotFound(err))
			},
		},
		{
			name:         "store unavailable",
			instrumentID: "Y",
			depth:        1,
			mockFn: func(m mocks) {
				m.store.EXPECT().ReadLatest(gomock.Any(), "Y").Return(nil, tickv1.ErrStoreUnavailable("read_latest", errors.New("timeout")))
			},
			assertFn: func(t *testing.T, snapshot *orderbookv1.Snapshot, err error) {
				assert.True(t, tickv1.IsStoreUnavailable(err))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := newUsecase(t)
			tc.mockFn(m)

			snapshot, err := uc.GetOrderBook(context.Background(), tc.instrumentID, tc.depth)
			tc.assertFn(t, snapshot, err)
		})
	}
}

func TestBuildSnapshot_Edges(t *testing.T) {
	testCases := []struct {
		name     string
		tick     *tickv1.Tick
		assertFn func(t *testing.T, snapshot *orderbookv1.Snapshot)
	}{
		{
			name: "empty book",
			tick: &tickv1.Tick{
				InstrumentID: "Z", LastPrice: 10, DepthLevel: 1,
				BidPrices: []float64{0}, BidQuantities: []int64{0},
				AskPrices: []float64{0}, AskQuantities: []int64{0},
			},
			assertFn: func(t *testing.T, snapshot *orderbookv1.Snapshot) {
				assert.Zero(t, snapshot.Imbalance)
				assert.Zero(t, snapshot.Spread)
				assert.Zero(t, snapshot.SpreadPct)
			},
		},
		{
			name: "one-sided book",
			tick: &tickv1.Tick{
				InstrumentID: "Z", LastPrice: 10, DepthLevel: 1,
				BidPrices: []float64{9.5}, BidQuantities: []int64{100},
				AskPrices: []float64{0}, AskQuantities: []int64{0},
			},
			assertFn: func(t *testing.T, snapshot *orderbookv1.Snapshot) {
				assert.Equal(t, 1.0, snapshot.Imbalance)
				assert.Zero(t, snapshot.Spread)
			},
		},
		{
			name: "crossed book keeps the raw spread",
			tick: &tickv1.Tick{
				InstrumentID: "Z", LastPrice: 10, DepthLevel: 1,
				BidPrices: []float64{10.5}, BidQuantities: []int64{1},
				AskPrices: []float64{10}, AskQuantities: []int64{3},
			},
			assertFn: func(t *testing.T, snapshot *orderbookv1.Snapshot) {
				assert.InDelta(t, -0.5, snapshot.Spread, 1e-9)
				assert.InDelta(t, -0.5, snapshot.Imbalance, 1e-9)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.assertFn(t, BuildSnapshot(tc.tick, 1))
		})
	}
}

func TestImbalance_Bounds(t *testing.T) {
	values := []int64{0, 1, 7, 1000, 1 << 40}
	for _, bid := range values {
		for _, ask := range values {
			imbalance := Imbalance(bid, ask)
			assert.GreaterOrEqual(t, imbalance, -1.0)
			assert.LessOrEqual(t, imbalance, 1.0)
		}
	}
	assert.Zero(t, Imbalance(0, 0))
}

func TestUsecase_GetPriceHistory(t *testing.T) {
	testCases := []struct {
		name     string
		count    int
		mockFn   func(m mocks)
		assertFn func(t *testing.T, points []orderbookv1.PricePoint, err error)
	}{
		{
			name:  "fewer ticks than requested",
			count: 10,
			mockFn: func(m mocks) {
				older := depth1Tick("X")
				newer := depth1Tick("X")
				newer.Timestamp = ts.Add(time.Second)
				newer.LastPrice = 100.5
				m.store.EXPECT().ReadRange(gomock.Any(), "X", streamv1.Range{LastN: 10}).Return([]*tickv1.Tick{older, newer}, nil)
			},
			assertFn: func(t *testing.T, points []orderbookv1.PricePoint, err error) {
				require.NoError(t, err)
				require.Len(t, points, 2)
				assert.Equal(t, orderbookv1.PricePoint{Timestamp: ts, BestBid: 100, BestAsk: 100.5, LastPrice: 100.25, Volume: 1000}, points[0])
				assert.Equal(t, 100.5, points[1].LastPrice)
			},
		},
		{
			name:  "unknown instrument is empty",
			count: 0,
			mockFn: func(m mocks) {
				m.store.EXPECT().ReadRange(gomock.Any(), "X", streamv1.Range{LastN: orderbookv1.DefaultHistoryCount}).Return(nil, nil)
			},
			assertFn: func(t *testing.T, points []orderbookv1.PricePoint, err error) {
				assert.NoError(t, err)
				assert.NotNil(t, points)
				assert.Empty(t, points)
			},
		},
		{
			name:  "store unavailable",
			count: 5,
			mockFn: func(m mocks) {
				m.store.EXPECT().ReadRange(gomock.Any(), "X", gomock.Any()).Return(nil, tickv1.ErrStoreUnavailable("read_range", errors.New("refused")))
			},
			assertFn: func(t *testing.T, points []orderbookv1.PricePoint, err error) {
				assert.True(t, tickv1.IsStoreUnavailable(err))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := newUsecase(t)
			tc.mockFn(m)

			points, err := uc.GetPriceHistory(context.Background(), "X", tc.count)
			tc.assertFn(t, points, err)
		})
	}
}

func TestUsecase_GetHistoricalTicks(t *testing.T) {
	start := ts
	end := ts.Add(time.Minute)

	testCases := []struct {
		name     string
		query    orderbookv1.HistoryQuery
		mockFn   func(m mocks)
		assertFn func(t *testing.T, ticks []*tickv1.Tick, err error)
	}{
		{
			name:  "window and count",
			query: orderbookv1.HistoryQuery{Count: 3, Start: &start, End: &end},
			mockFn: func(m mocks) {
				m.store.EXPECT().ReadRange(gomock.Any(), "X", streamv1.Range{Since: &start, Until: &end, LastN: 3}).Return([]*tickv1.Tick{depth1Tick("X")}, nil)
			},
			assertFn: func(t *testing.T, ticks []*tickv1.Tick, err error) {
				assert.NoError(t, err)
				assert.Len(t, ticks, 1)
			},
		},
		{
			name:   "end before start",
			query:  orderbookv1.HistoryQuery{Start: &end, End: &start},
			mockFn: func(m mocks) {},
			assertFn: func(t *testing.T, ticks []*tickv1.Tick, err error) {
				assert.True(t, pkgErrors.ErrorCodeEquals(err, pkgErrors.GeneralBadRequestError))
			},
		},
		{
			name:  "no ticks",
			query: orderbookv1.HistoryQuery{},
			mockFn: func(m mocks) {
				m.store.EXPECT().ReadRange(gomock.Any(), "X", streamv1.Range{LastN: orderbookv1.DefaultHistoryCount}).Return(nil, nil)
			},
			assertFn: func(t *testing.T, ticks []*tickv1.Tick, err error) {
				assert.NoError(t, err)
				assert.NotNil(t, ticks)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := newUsecase(t)
			tc.mockFn(m)

			ticks, err := uc.GetHistoricalTicks(context.Background(), "X", tc.query)
			tc.assertFn(t, ticks, err)
		})
	}
}

func TestUsecase_GetMultipleInstruments(t *testing.T) {
	uc, m := newUsecase(t)

	m.store.EXPECT().ReadLatest(gomock.Any(), "A").Return(depth1Tick("A"), nil)
	m.store.EXPECT().ReadLatest(gomock.Any(), "B").Return(nil, tickv1.ErrNotFound("B"))
	m.store.EXPECT().ReadLatest(gomock.Any(), "C").Return(nil, tickv1.ErrStoreUnavailable("read_latest", errors.New("timeout")))
	m.logger.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)

	results := uc.GetMultipleInstruments(context.Background(), []string{"A", "B", "C", "A"})

	require.Len(t, results, 3)

	a := results["A"]
	require.NotNil(t, a.Summary)
	assert.Nil(t, a.Error)
	assert.Equal(t, 100.0, a.Summary.BidPrice)
	assert.Equal(t, int64(10), a.Summary.AskQuantity)

	b := results["B"]
	assert.Nil(t, b.Summary)
	require.NotNil(t, b.Error)
	assert.Equal(t, pkgErrors.NotFoundError.String(), b.Error.Code)

	assert.Equal(t, pkgErrors.StoreUnavailableError.String(), results["C"].Error.Code)
}

func TestUsecase_GetLatestTick(t *testing.T) {
	uc, m := newUsecase(t)
	m.store.EXPECT().ReadLatest(gomock.Any(), "A").Return(depth1Tick("A"), nil)
	m.store.EXPECT().ReadLatest(gomock.Any(), "B").Return(nil, tickv1.ErrNotFound("B"))

	tick, err := uc.GetLatestTick(context.Background(), "A")
	assert.NoError(t, err)
	assert.Equal(t, "A", tick.InstrumentID)

	_, err = uc.GetLatestTick(context.Background(), "B")
	assert.True(t, tickv1.IsNotFound(err))
}
