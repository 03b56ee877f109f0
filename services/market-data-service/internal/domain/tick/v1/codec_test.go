package tickv1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTick() *Tick {
	exchangeTS := time.Date(2025, 7, 1, 9, 15, 0, 123456000, time.UTC)
	return &Tick{
		InstrumentID:      "256265",
		Timestamp:         exchangeTS,
		ExchangeTimestamp: &exchangeTS,
		ProcessTimestamp:  time.Date(2025, 7, 1, 9, 15, 0, 200001000, time.UTC),
		LastPrice:         24512.35,
		Volume:            1234567,
		DepthLevel:        DepthLevel5,
		BidPrices:         []float64{24512.3, 24512.25, 24512.2, 0.1, 0},
		BidQuantities:     []int64{75, 150, 25, 1, 0},
		AskPrices:         []float64{24512.4, 24512.45, 24512.5, 24512.55, 24512.6},
		AskQuantities:     []int64{50, 100, 200, 300, 400},
		OI:                99,
		OIDayHigh:         120,
		OIDayLow:          80,
	}
}

func TestFields_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		tick *Tick
	}{
		{
			name: "depth 5 with exchange timestamp",
			tick: sampleTick(),
		},
		{
			name: "depth 1 without exchange timestamp",
			tick: &Tick{
				InstrumentID:     "X",
				Timestamp:        time.Date(2025, 7, 1, 9, 15, 1, 1000, time.UTC),
				ProcessTimestamp: time.Date(2025, 7, 1, 9, 15, 1, 2000, time.UTC),
				LastPrice:        100.25,
				Volume:           10,
				DepthLevel:       DepthLevel1,
				BidPrices:        []float64{100},
				BidQuantities:    []int64{5},
				AskPrices:        []float64{100.5},
				AskQuantities:    []int64{7},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fields, err := ToFields(tc.tick)
			require.NoError(t, err)

			decoded, err := FromFields(fields)
			require.NoError(t, err)
			assert.Equal(t, tc.tick, decoded)
		})
	}
}

func TestToFields_BestLevelScalars(t *testing.T) {
	fields, err := ToFields(sampleTick())
	require.NoError(t, err)

	assert.Equal(t, "24512.3", fields[FieldBidPrice])
	assert.Equal(t, "75", fields[FieldBidQuantity])
	assert.Equal(t, "24512.4", fields[FieldAskPrice])
	assert.Equal(t, "50", fields[FieldAskQuantity])
	assert.Equal(t, "5", fields[FieldDepthLevel])
	assert.Equal(t, "[75,150,25,1,0]", fields[FieldBidQuantities])
}

func TestFromFields(t *testing.T) {
	testCases := []struct {
		name     string
		values   map[string]any
		assertFn func(t *testing.T, tick *Tick, err error)
	}{
		{
			name: "byte values are accepted",
			values: map[string]any{
				FieldInstrumentID: []byte("X"),
				FieldTimestamp:    "1751361300000001",
				FieldLastPrice:    "10.5",
				FieldDepthLevel:   "1",
				FieldBidPrices:    "[10]",
			},
			assertFn: func(t *testing.T, tick *Tick, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "X", tick.InstrumentID)
				assert.Equal(t, time.UnixMicro(1751361300000001).UTC(), tick.Timestamp)
				assert.Nil(t, tick.ExchangeTimestamp)
				assert.Equal(t, []float64{10}, tick.BidPrices)
			},
		},
		{
			name: "bad number",
			values: map[string]any{
				FieldInstrumentID: "X",
				FieldVolume:       "ten",
			},
			assertFn: func(t *testing.T, tick *Tick, err error) {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), FieldVolume)
				assert.Nil(t, tick)
			},
		},
		{
			name: "bad array",
			values: map[string]any{
				FieldAskPrices: "[1,",
			},
			assertFn: func(t *testing.T, tick *Tick, err error) {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), FieldAskPrices)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tick, err := FromFields(tc.values)
			tc.assertFn(t, tick, err)
		})
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	tick := sampleTick()
	tick.Sequence = 42

	data, err := Marshal(tick)
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, tick, decoded)
}
