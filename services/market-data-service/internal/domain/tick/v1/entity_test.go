package tickv1

import (
	"testing"

	"github.com/muhammadchandra19/marketdepth/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestTick_CheckShape(t *testing.T) {
	testCases := []struct {
		name     string
		tick     *Tick
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "valid depth 1",
			tick: &Tick{DepthLevel: 1, BidPrices: []float64{1}, BidQuantities: []int64{1}, AskPrices: []float64{2}, AskQuantities: []int64{1}},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "unsupported depth",
			tick: &Tick{DepthLevel: 3},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, errors.InvalidDepthLevelError))
			},
		},
		{
			name: "short ask side",
			tick: &Tick{DepthLevel: 1, BidPrices: []float64{1}, BidQuantities: []int64{1}, AskPrices: []float64{2}},
			assertFn: func(t *testing.T, err error) {
				assert.True(t, IsMalformed(err))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.assertFn(t, tc.tick.CheckShape())
		})
	}
}

func TestTick_Clone(t *testing.T) {
	original := sampleTick()
	clone := original.Clone()

	assert.Equal(t, original, clone)

	clone.BidPrices[0] = 1
	clone.ExchangeTimestamp = nil
	assert.Equal(t, 24512.3, original.BidPrices[0])
	assert.NotNil(t, original.ExchangeTimestamp)

	var nilTick *Tick
	assert.Nil(t, nilTick.Clone())
}

func TestTick_BestLevels(t *testing.T) {
	tick := &Tick{}
	price, qty := tick.BestBid()
	assert.Zero(t, price)
	assert.Zero(t, qty)

	price, qty = sampleTick().BestAsk()
	assert.Equal(t, 24512.4, price)
	assert.Equal(t, int64(50), qty)
}
