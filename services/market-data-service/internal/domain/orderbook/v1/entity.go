package orderbookv1

import (
	"time"
)

// DefaultHistoryCount is used when a history query does not set a count.
const DefaultHistoryCount = 100

// BookLevel is one ranked price level of one side.
type BookLevel struct {
	Level      int     `json:"level"`
	Price      float64 `json:"price"`
	Quantity   int64   `json:"quantity"`
	Cumulative int64   `json:"cumulative"`
}

// Snapshot is an order book view derived from a single tick.
type Snapshot struct {
	InstrumentID     string      `json:"instrument_id"`
	Timestamp        time.Time   `json:"timestamp"`
	LastPrice        float64     `json:"last_price"`
	Volume           int64       `json:"volume"`
	DepthLevel       int         `json:"depth_level"`
	RequestedDepth   int         `json:"requested_depth"`
	Degraded         bool        `json:"degraded"`
	Bids             []BookLevel `json:"bids"`
	Asks             []BookLevel `json:"asks"`
	TotalBidQuantity int64       `json:"total_bid_quantity"`
	TotalAskQuantity int64       `json:"total_ask_quantity"`
	Spread           float64     `json:"spread"`
	SpreadPct        float64     `json:"spread_pct"`
	Imbalance        float64     `json:"imbalance"`
}

// PricePoint is one entry of a price history series.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	BestBid   float64   `json:"best_bid"`
	BestAsk   float64   `json:"best_ask"`
	LastPrice float64   `json:"last_price"`
	Volume    int64     `json:"volume"`
}

// HistoryQuery selects historical ticks. Start and End are inclusive.
type HistoryQuery struct {
	Count int
	Start *time.Time
	End   *time.Time
}

// Summary is the compact latest view used by multi-instrument queries.
type Summary struct {
	InstrumentID string    `json:"instrument_id"`
	Timestamp    time.Time `json:"timestamp"`
	LastPrice    float64   `json:"last_price"`
	Volume       int64     `json:"volume"`
	DepthLevel   int       `json:"depth_level"`
	BidPrice     float64   `json:"bid_price"`
	BidQuantity  int64     `json:"bid_quantity"`
	AskPrice     float64   `json:"ask_price"`
	AskQuantity  int64     `json:"ask_quantity"`
}

// ResultError is the per-key failure of a multi-instrument query.
type ResultError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// InstrumentResult carries either a summary or an error for one instrument.
type InstrumentResult struct {
	Summary *Summary     `json:"summary,omitempty"`
	Error   *ResultError `json:"error,omitempty"`
}
