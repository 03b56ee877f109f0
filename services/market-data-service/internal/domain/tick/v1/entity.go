package tickv1

import (
	"fmt"
	"time"
)

// Supported depth levels.
const (
	DepthLevel1 = 1
	DepthLevel5 = 5
)

// ValidDepth reports whether level is a supported depth level.
func ValidDepth(level int) bool {
	return level == DepthLevel1 || level == DepthLevel5
}

// Tick is one normalized market update. Once appended to a store it is never mutated.
type Tick struct {
	InstrumentID      string     `json:"instrument_id"`
	Sequence          uint64     `json:"sequence,omitempty"`
	Timestamp         time.Time  `json:"timestamp"`
	ExchangeTimestamp *time.Time `json:"exchange_timestamp,omitempty"`
	ProcessTimestamp  time.Time  `json:"process_timestamp"`
	LastPrice         float64    `json:"last_price"`
	Volume            int64      `json:"volume"`
	DepthLevel        int        `json:"depth_level"`
	BidPrices         []float64  `json:"bid_prices"`
	BidQuantities     []int64    `json:"bid_quantities"`
	AskPrices         []float64  `json:"ask_prices"`
	AskQuantities     []int64    `json:"ask_quantities"`
	OI                int64      `json:"oi"`
	OIDayHigh         int64      `json:"oi_day_high"`
	OIDayLow          int64      `json:"oi_day_low"`
}

// BestBid returns the level-0 bid, or zeros when the side is empty.
func (t *Tick) BestBid() (float64, int64) {
	if len(t.BidPrices) == 0 || len(t.BidQuantities) == 0 {
		return 0, 0
	}
	return t.BidPrices[0], t.BidQuantities[0]
}

// BestAsk returns the level-0 ask, or zeros when the side is empty.
func (t *Tick) BestAsk() (float64, int64) {
	if len(t.AskPrices) == 0 || len(t.AskQuantities) == 0 {
		return 0, 0
	}
	return t.AskPrices[0], t.AskQuantities[0]
}

// CheckShape verifies that every depth array has exactly DepthLevel entries.
func (t *Tick) CheckShape() error {
	if !ValidDepth(t.DepthLevel) {
		return ErrInvalidDepthLevel(t.DepthLevel)
	}
	for field, n := range map[string]int{
		"bid_prices":     len(t.BidPrices),
		"bid_quantities": len(t.BidQuantities),
		"ask_prices":     len(t.AskPrices),
		"ask_quantities": len(t.AskQuantities),
	} {
		if n != t.DepthLevel {
			return ErrMalformedTick(fmt.Sprintf("%s has %d entries, depth level is %d", field, n, t.DepthLevel), field)
		}
	}
	return nil
}

// Clone returns a deep copy of the tick.
func (t *Tick) Clone() *Tick {
	if t == nil {
		return nil
	}
	c := *t
	if t.ExchangeTimestamp != nil {
		ts := *t.ExchangeTimestamp
		c.ExchangeTimestamp = &ts
	}
	c.BidPrices = append([]float64(nil), t.BidPrices...)
	c.BidQuantities = append([]int64(nil), t.BidQuantities...)
	c.AskPrices = append([]float64(nil), t.AskPrices...)
	c.AskQuantities = append([]int64(nil), t.AskQuantities...)
	return &c
}
