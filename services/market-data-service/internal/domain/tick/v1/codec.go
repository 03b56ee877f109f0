package tickv1

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
)

// Stream field names. Arrays are JSON text; best-level scalars duplicate index 0
// so consumers that only need the top of book can skip array decoding.
const (
	FieldInstrumentID      = "instrument_id"
	FieldTimestamp         = "timestamp"
	FieldExchangeTimestamp = "exchange_timestamp"
	FieldProcessTimestamp  = "process_timestamp"
	FieldLastPrice         = "last_price"
	FieldVolume            = "volume"
	FieldDepthLevel        = "depth_level"
	FieldBidPrices         = "bid_prices"
	FieldBidQuantities     = "bid_quantities"
	FieldAskPrices         = "ask_prices"
	FieldAskQuantities     = "ask_quantities"
	FieldBidPrice          = "bid_price"
	FieldBidQuantity       = "bid_quantity"
	FieldAskPrice          = "ask_price"
	FieldAskQuantity       = "ask_quantity"
	FieldOI                = "oi"
	FieldOIDayHigh         = "oi_day_high"
	FieldOIDayLow          = "oi_day_low"
)

// ToFields encodes a tick into flat string fields for a stream entry.
// Timestamps are unix microseconds; floats use the shortest round-trip form.
func ToFields(t *Tick) (map[string]any, error) {
	bidPrices, err := sonic.Marshal(t.BidPrices)
	if err != nil {
		return nil, err
	}
	bidQuantities, err := sonic.Marshal(t.BidQuantities)
	if err != nil {
		return nil, err
	}
	askPrices, err := sonic.Marshal(t.AskPrices)
	if err != nil {
		return nil, err
	}
	askQuantities, err := sonic.Marshal(t.AskQuantities)
	if err != nil {
		return nil, err
	}

	bidPrice, bidQuantity := t.BestBid()
	askPrice, askQuantity := t.BestAsk()

	exchangeTS := ""
	if t.ExchangeTimestamp != nil {
		exchangeTS = formatMicros(*t.ExchangeTimestamp)
	}

	return map[string]any{
		FieldInstrumentID:      t.InstrumentID,
		FieldTimestamp:         formatMicros(t.Timestamp),
		FieldExchangeTimestamp: exchangeTS,
		FieldProcessTimestamp:  formatMicros(t.ProcessTimestamp),
		FieldLastPrice:         formatFloat(t.LastPrice),
		FieldVolume:            strconv.FormatInt(t.Volume, 10),
		FieldDepthLevel:        strconv.Itoa(t.DepthLevel),
		FieldBidPrices:         string(bidPrices),
		FieldBidQuantities:     string(bidQuantities),
		FieldAskPrices:         string(askPrices),
		FieldAskQuantities:     string(askQuantities),
		FieldBidPrice:          formatFloat(bidPrice),
		FieldBidQuantity:       strconv.FormatInt(bidQuantity, 10),
		FieldAskPrice:          formatFloat(askPrice),
		FieldAskQuantity:       strconv.FormatInt(askQuantity, 10),
		FieldOI:                strconv.FormatInt(t.OI, 10),
		FieldOIDayHigh:         strconv.FormatInt(t.OIDayHigh, 10),
		FieldOIDayLow:          strconv.FormatInt(t.OIDayLow, 10),
	}, nil
}

// FromFields decodes stream entry fields produced by ToFields.
func FromFields(values map[string]any) (*Tick, error) {
	d := fieldDecoder{values: values}
	t := &Tick{
		InstrumentID:     d.str(FieldInstrumentID),
		Timestamp:        d.micros(FieldTimestamp),
		ProcessTimestamp: d.micros(FieldProcessTimestamp),
		LastPrice:        d.float(FieldLastPrice),
		Volume:           d.int(FieldVolume),
		DepthLevel:       int(d.int(FieldDepthLevel)),
		OI:               d.int(FieldOI),
		OIDayHigh:        d.int(FieldOIDayHigh),
		OIDayLow:         d.int(FieldOIDayLow),
	}
	if d.str(FieldExchangeTimestamp) != "" {
		ts := d.micros(FieldExchangeTimestamp)
		t.ExchangeTimestamp = &ts
	}
	d.json(FieldBidPrices, &t.BidPrices)
	d.json(FieldBidQuantities, &t.BidQuantities)
	d.json(FieldAskPrices, &t.AskPrices)
	d.json(FieldAskQuantities, &t.AskQuantities)

	if d.err != nil {
		return nil, d.err
	}
	return t, nil
}

// Marshal encodes a tick as a JSON document.
func Marshal(t *Tick) ([]byte, error) {
	return sonic.Marshal(t)
}

// Unmarshal decodes a JSON document produced by Marshal.
func Unmarshal(data []byte) (*Tick, error) {
	t := &Tick{}
	if err := sonic.Unmarshal(data, t); err != nil {
		return nil, err
	}
	t.Timestamp = t.Timestamp.UTC()
	t.ProcessTimestamp = t.ProcessTimestamp.UTC()
	if t.ExchangeTimestamp != nil {
		ts := t.ExchangeTimestamp.UTC()
		t.ExchangeTimestamp = &ts
	}
	return t, nil
}

func formatMicros(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return strconv.FormatInt(ts.UnixMicro(), 10)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

type fieldDecoder struct {
	values map[string]any
	err    error
}

func (d *fieldDecoder) str(key string) string {
	switch v := d.values[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (d *fieldDecoder) fail(key string, err error) {
	if d.err == nil {
		d.err = fmt.Errorf("decode field %s: %w", key, err)
	}
}

func (d *fieldDecoder) int(key string) int64 {
	s := d.str(key)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		d.fail(key, err)
	}
	return n
}

func (d *fieldDecoder) float(key string) float64 {
	s := d.str(key)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		d.fail(key, err)
	}
	return f
}

func (d *fieldDecoder) micros(key string) time.Time {
	s := d.str(key)
	if s == "" {
		return time.Time{}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		d.fail(key, err)
		return time.Time{}
	}
	return time.UnixMicro(n).UTC()
}

func (d *fieldDecoder) json(key string, dst any) {
	s := d.str(key)
	if s == "" {
		return
	}
	if err := sonic.UnmarshalString(s, dst); err != nil {
		d.fail(key, err)
	}
}
