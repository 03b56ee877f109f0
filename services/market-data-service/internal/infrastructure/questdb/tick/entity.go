package tick

import (
	"time"

	"github.com/bytedance/sonic"
	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
)

// Tick is one archived row of the ticks table. Depth arrays are JSON text.
type Tick struct {
	Timestamp     time.Time
	InstrumentID  string
	LastPrice     float64
	Volume        int64
	DepthLevel    int
	BidPrice      float64
	BidQuantity   int64
	AskPrice      float64
	AskQuantity   int64
	BidPrices     string
	BidQuantities string
	AskPrices     string
	AskQuantities string
	OI            int64
}

// Filter represents the filter criteria for archived ticks.
type Filter struct {
	InstrumentID string
	From         *time.Time
	To           *time.Time
	Limit        int
}

// FromDomain converts a stream tick into an archive row.
func FromDomain(t *tickv1.Tick) (*Tick, error) {
	row := &Tick{
		Timestamp:    t.Timestamp,
		InstrumentID: t.InstrumentID,
		LastPrice:    t.LastPrice,
		Volume:       t.Volume,
		DepthLevel:   t.DepthLevel,
		OI:           t.OI,
	}
	row.BidPrice, row.BidQuantity = t.BestBid()
	row.AskPrice, row.AskQuantity = t.BestAsk()

	var err error
	if row.BidPrices, err = sonic.MarshalString(t.BidPrices); err != nil {
		return nil, err
	}
	if row.BidQuantities, err = sonic.MarshalString(t.BidQuantities); err != nil {
		return nil, err
	}
	if row.AskPrices, err = sonic.MarshalString(t.AskPrices); err != nil {
		return nil, err
	}
	if row.AskQuantities, err = sonic.MarshalString(t.AskQuantities); err != nil {
		return nil, err
	}
	return row, nil
}

// ToDomain converts an archive row back into a tick.
func (r *Tick) ToDomain() (*tickv1.Tick, error) {
	t := &tickv1.Tick{
		InstrumentID: r.InstrumentID,
		Timestamp:    r.Timestamp.UTC(),
		LastPrice:    r.LastPrice,
		Volume:       r.Volume,
		DepthLevel:   r.DepthLevel,
		OI:           r.OI,
	}
	columns := []struct {
		src string
		dst any
	}{
		{r.BidPrices, &t.BidPrices},
		{r.BidQuantities, &t.BidQuantities},
		{r.AskPrices, &t.AskPrices},
		{r.AskQuantities, &t.AskQuantities},
	}
	for _, c := range columns {
		if c.src == "" {
			continue
		}
		if err := sonic.UnmarshalString(c.src, c.dst); err != nil {
			return nil, err
		}
	}
	return t, nil
}
