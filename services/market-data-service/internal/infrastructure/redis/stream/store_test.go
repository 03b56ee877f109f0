package stream

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	redisMock "github.com/muhammadchandra19/marketdepth/pkg/redis/mock"
	streamv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/stream/v1"
	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
	v9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 7, 1, 9, 15, 0, 0, time.UTC)

func tickAt(id string, offset time.Duration, depth int) *tickv1.Tick {
	t := &tickv1.Tick{
		InstrumentID: id,
		Timestamp:    base.Add(offset),
		LastPrice:    100,
		DepthLevel:   depth,
	}
	for i := range depth {
		t.BidPrices = append(t.BidPrices, 99-float64(i))
		t.BidQuantities = append(t.BidQuantities, int64(i+1))
		t.AskPrices = append(t.AskPrices, 101+float64(i))
		t.AskQuantities = append(t.AskQuantities, int64(i+1))
	}
	return t
}

func message(t *testing.T, id string, tick *tickv1.Tick) v9.XMessage {
	fields, err := tickv1.ToFields(tick)
	require.NoError(t, err)
	return v9.XMessage{ID: id, Values: fields}
}

func TestStore_Append(t *testing.T) {
	testCases := []struct {
		name     string
		tick     *tickv1.Tick
		mockFn   func(client *redisMock.MockClient)
		assertFn func(t *testing.T, seq uint64, err error)
	}{
		{
			name: "depth 1 uses the depth 1 cap",
			tick: tickAt("X", 0, 1),
			mockFn: func(client *redisMock.MockClient) {
				client.EXPECT().XAdd(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, args *v9.XAddArgs) (string, error) {
					_, hasDeadline := ctx.Deadline()
					assert.True(t, hasDeadline)
					assert.Equal(t, "market_data:X", args.Stream)
					assert.Equal(t, int64(10000), args.MaxLen)
					assert.False(t, args.Approx)
					assert.Equal(t, "[99]", args.Values.(map[string]any)[tickv1.FieldBidPrices])
					return "1751361300000-3", nil
				})
			},
			assertFn: func(t *testing.T, seq uint64, err error) {
				assert.NoError(t, err)
				assert.Equal(t, uint64(1751361300000)<<20|3, seq)
			},
		},
		{
			name: "depth 5 uses the depth 5 cap",
			tick: tickAt("Y", 0, 5),
			mockFn: func(client *redisMock.MockClient) {
				client.EXPECT().XAdd(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, args *v9.XAddArgs) (string, error) {
					assert.Equal(t, int64(5000), args.MaxLen)
					return "1-0", nil
				})
			},
			assertFn: func(t *testing.T, seq uint64, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:   "malformed shape never reaches redis",
			tick:   &tickv1.Tick{InstrumentID: "X", DepthLevel: 5, BidPrices: []float64{1}},
			mockFn: func(client *redisMock.MockClient) {},
			assertFn: func(t *testing.T, seq uint64, err error) {
				assert.True(t, tickv1.IsMalformed(err))
			},
		},
		{
			name: "redis failure is store unavailable",
			tick: tickAt("X", 0, 1),
			mockFn: func(client *redisMock.MockClient) {
				client.EXPECT().XAdd(gomock.Any(), gomock.Any()).Return("", errors.New("dial tcp: connection refused"))
			},
			assertFn: func(t *testing.T, seq uint64, err error) {
				assert.True(t, tickv1.IsStoreUnavailable(err))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := redisMock.NewMockClient(ctrl)
			tc.mockFn(client)

			seq, err := NewStore(client, Config{}).Append(context.Background(), tc.tick)
			tc.assertFn(t, seq, err)
		})
	}
}

func TestStore_ReadLatest(t *testing.T) {
	testCases := []struct {
		name     string
		mockFn   func(t *testing.T, client *redisMock.MockClient)
		assertFn func(t *testing.T, tick *tickv1.Tick, err error)
	}{
		{
			name: "latest entry",
			mockFn: func(t *testing.T, client *redisMock.MockClient) {
				client.EXPECT().XRevRangeN(gomock.Any(), "market_data:X", "+", "-", int64(1)).
					Return([]v9.XMessage{message(t, "5-1", tickAt("X", time.Second, 1))}, nil)
			},
			assertFn: func(t *testing.T, tick *tickv1.Tick, err error) {
				require.NoError(t, err)
				assert.Equal(t, base.Add(time.Second), tick.Timestamp)
				assert.Equal(t, uint64(5)<<20|1, tick.Sequence)
			},
		},
		{
			name: "empty stream",
			mockFn: func(t *testing.T, client *redisMock.MockClient) {
				client.EXPECT().XRevRangeN(gomock.Any(), "market_data:X", "+", "-", int64(1)).Return(nil, nil)
			},
			assertFn: func(t *testing.T, tick *tickv1.Tick, err error) {
				assert.True(t, tickv1.IsNotFound(err))
			},
		},
		{
			name: "redis down",
			mockFn: func(t *testing.T, client *redisMock.MockClient) {
				client.EXPECT().XRevRangeN(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, context.DeadlineExceeded)
			},
			assertFn: func(t *testing.T, tick *tickv1.Tick, err error) {
				assert.True(t, tickv1.IsStoreUnavailable(err))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := redisMock.NewMockClient(ctrl)
			tc.mockFn(t, client)

			tick, err := NewStore(client, Config{}).ReadLatest(context.Background(), "X")
			tc.assertFn(t, tick, err)
		})
	}
}

func TestStore_ReadRange(t *testing.T) {
	// newest first, as XREVRANGE returns them
	page := func(t *testing.T, from, to int) []v9.XMessage {
		var out []v9.XMessage
		for i := from; i >= to; i-- {
			out = append(out, message(t, fmt.Sprintf("%d-0", i), tickAt("X", time.Duration(i)*time.Second, 1)))
		}
		return out
	}

	testCases := []struct {
		name     string
		r        streamv1.Range
		mockFn   func(t *testing.T, client *redisMock.MockClient)
		assertFn func(t *testing.T, ticks []*tickv1.Tick, err error)
	}{
		{
			name: "last n fits one page",
			r:    streamv1.Range{LastN: 3},
			mockFn: func(t *testing.T, client *redisMock.MockClient) {
				client.EXPECT().XRevRangeN(gomock.Any(), "market_data:X", "+", "-", int64(3)).Return(page(t, 10, 8), nil)
			},
			assertFn: func(t *testing.T, ticks []*tickv1.Tick, err error) {
				require.NoError(t, err)
				require.Len(t, ticks, 3)
				assert.Equal(t, base.Add(8*time.Second), ticks[0].Timestamp)
				assert.Equal(t, base.Add(10*time.Second), ticks[2].Timestamp)
			},
		},
		{
			name: "history shorter than requested",
			r:    streamv1.Range{LastN: 3},
			mockFn: func(t *testing.T, client *redisMock.MockClient) {
				client.EXPECT().XRevRangeN(gomock.Any(), "market_data:X", "+", "-", int64(3)).Return(page(t, 1, 0), nil)
			},
			assertFn: func(t *testing.T, ticks []*tickv1.Tick, err error) {
				require.NoError(t, err)
				assert.Len(t, ticks, 2)
			},
		},
		{
			name: "time window pages backwards",
			r: func() streamv1.Range {
				since := base.Add(2 * time.Second)
				until := base.Add(998 * time.Second)
				return streamv1.Range{Since: &since, Until: &until}
			}(),
			mockFn: func(t *testing.T, client *redisMock.MockClient) {
				gomock.InOrder(
					client.EXPECT().XRevRangeN(gomock.Any(), "market_data:X", "+", "-", int64(pageSize)).Return(page(t, 999, 500), nil),
					client.EXPECT().XRevRangeN(gomock.Any(), "market_data:X", "(500-0", "-", int64(pageSize)).Return(page(t, 499, 1), nil),
				)
			},
			assertFn: func(t *testing.T, ticks []*tickv1.Tick, err error) {
				require.NoError(t, err)
				require.Len(t, ticks, 997)
				assert.Equal(t, base.Add(2*time.Second), ticks[0].Timestamp)
				assert.Equal(t, base.Add(998*time.Second), ticks[len(ticks)-1].Timestamp)
			},
		},
		{
			name: "unknown instrument",
			r:    streamv1.Range{LastN: 10},
			mockFn: func(t *testing.T, client *redisMock.MockClient) {
				client.EXPECT().XRevRangeN(gomock.Any(), "market_data:X", "+", "-", int64(10)).Return([]v9.XMessage{}, nil)
			},
			assertFn: func(t *testing.T, ticks []*tickv1.Tick, err error) {
				assert.NoError(t, err)
				assert.Empty(t, ticks)
			},
		},
		{
			name: "corrupt entry",
			r:    streamv1.Range{LastN: 1},
			mockFn: func(t *testing.T, client *redisMock.MockClient) {
				client.EXPECT().XRevRangeN(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]v9.XMessage{{ID: "1-0", Values: map[string]any{tickv1.FieldVolume: "x"}}}, nil)
			},
			assertFn: func(t *testing.T, ticks []*tickv1.Tick, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := redisMock.NewMockClient(ctrl)
			tc.mockFn(t, client)

			ticks, err := NewStore(client, Config{}).ReadRange(context.Background(), "X", tc.r)
			tc.assertFn(t, ticks, err)
		})
	}
}

func TestStore_LenPingClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := redisMock.NewMockClient(ctrl)
	client.EXPECT().XLen(gomock.Any(), "md:X").Return(int64(42), nil)
	client.EXPECT().XLen(gomock.Any(), "md:Y").Return(int64(0), errors.New("i/o timeout"))
	client.EXPECT().Ping(gomock.Any()).Return(errors.New("refused"))
	client.EXPECT().Disconnect(gomock.Any()).Return(nil)

	store := NewStore(client, Config{KeyPrefix: "md:", OpTimeout: time.Second})

	n, err := store.Len(context.Background(), "X")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), n)

	_, err = store.Len(context.Background(), "Y")
	assert.True(t, tickv1.IsStoreUnavailable(err))
	assert.True(t, tickv1.IsStoreUnavailable(store.Ping(context.Background())))
	assert.NoError(t, store.Close())
}

func TestParseSequence(t *testing.T) {
	a, err := ParseSequence("1751361300000-0")
	require.NoError(t, err)
	b, err := ParseSequence("1751361300000-1")
	require.NoError(t, err)
	c, err := ParseSequence("1751361300001-0")
	require.NoError(t, err)

	assert.Less(t, a, b)
	assert.Less(t, b, c)

	_, err = ParseSequence("garbage")
	assert.Error(t, err)
	_, err = ParseSequence("1-x")
	assert.Error(t, err)
}
