package normalizer

import (
	"fmt"
	"time"

	depthconfigv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/depthconfig/v1"
	normalizerv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/normalizer/v1"
	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
)

// Config controls normalization.
type Config struct {
	Policy normalizerv1.PaddingPolicy
	// ReceiptTimeFallback stamps ticks that carry no provider time with the receipt time.
	ReceiptTimeFallback bool
}

// Normalizer converts provider payloads using the registry's current depth levels.
type Normalizer struct {
	registry depthconfigv1.Registry
	config   Config
}

// NewNormalizer creates a normalizer. An empty policy means pad.
func NewNormalizer(registry depthconfigv1.Registry, config Config) *Normalizer {
	if config.Policy == "" {
		config.Policy = normalizerv1.PolicyPad
	}
	return &Normalizer{registry: registry, config: config}
}

// Policy returns the padding policy in use.
func (n *Normalizer) Policy() normalizerv1.PaddingPolicy {
	return n.config.Policy
}

// Normalize validates the payload and shapes it to the instrument's depth level,
// read once at entry.
func (n *Normalizer) Normalize(payload *tickv1.ProviderTick, receivedAt time.Time) (*tickv1.Tick, normalizerv1.Outcome, error) {
	var outcome normalizerv1.Outcome
	if payload == nil {
		return nil, outcome, tickv1.ErrMalformedTick("empty payload", "")
	}

	instrumentID := string(payload.InstrumentToken)
	if instrumentID == "" {
		return nil, outcome, tickv1.ErrMalformedTick("missing instrument token", "instrument_token")
	}
	if payload.LastPrice <= 0 {
		return nil, outcome, tickv1.ErrMalformedTick(fmt.Sprintf("last price %v is not positive", payload.LastPrice), "last_price")
	}
	if payload.VolumeTraded < 0 || payload.OI < 0 || payload.OIDayHigh < 0 || payload.OIDayLow < 0 {
		return nil, outcome, tickv1.ErrMalformedTick("negative volume or open interest", "volume_traded")
	}

	timestamp, exchangeTS, err := n.timestamp(payload, receivedAt)
	if err != nil {
		return nil, outcome, err
	}

	depth := n.registry.Get(instrumentID)
	outcome.ConfiguredDepth = depth

	buy := payload.Depth.Buy[:min(len(payload.Depth.Buy), depth)]
	sell := payload.Depth.Sell[:min(len(payload.Depth.Sell), depth)]
	if err := checkLevels("depth.buy", buy); err != nil {
		return nil, outcome, err
	}
	if err := checkLevels("depth.sell", sell); err != nil {
		return nil, outcome, err
	}
	outcome.ProvidedDepth = min(len(buy), len(sell))

	if outcome.ProvidedDepth < depth {
		switch n.config.Policy {
		case normalizerv1.PolicyReject:
			return nil, outcome, tickv1.ErrMalformedTick(
				fmt.Sprintf("provider sent %d levels, depth level is %d", outcome.ProvidedDepth, depth), "depth")
		case normalizerv1.PolicyTruncate:
			if depth > tickv1.DepthLevel1 {
				depth = tickv1.DepthLevel1
				buy = buy[:min(len(buy), depth)]
				sell = sell[:min(len(sell), depth)]
				outcome.Truncated = true
			}
			outcome.Padded = len(buy) < depth || len(sell) < depth
		default:
			outcome.Padded = true
		}
	}

	tick := &tickv1.Tick{
		InstrumentID:      instrumentID,
		Timestamp:         timestamp,
		ExchangeTimestamp: exchangeTS,
		ProcessTimestamp:  toMicros(receivedAt),
		LastPrice:         payload.LastPrice,
		Volume:            payload.VolumeTraded,
		DepthLevel:        depth,
		OI:                payload.OI,
		OIDayHigh:         payload.OIDayHigh,
		OIDayLow:          payload.OIDayLow,
	}
	tick.BidPrices, tick.BidQuantities = fill(buy, depth)
	tick.AskPrices, tick.AskQuantities = fill(sell, depth)

	return tick, outcome, nil
}

func (n *Normalizer) timestamp(payload *tickv1.ProviderTick, receivedAt time.Time) (time.Time, *time.Time, error) {
	if payload.ExchangeTimestamp != nil && !payload.ExchangeTimestamp.IsZero() {
		ts := toMicros(payload.ExchangeTimestamp.Time)
		return ts, &ts, nil
	}
	if payload.Timestamp != nil && !payload.Timestamp.IsZero() {
		return toMicros(payload.Timestamp.Time), nil, nil
	}
	if n.config.ReceiptTimeFallback && !receivedAt.IsZero() {
		return toMicros(receivedAt), nil, nil
	}
	return time.Time{}, nil, tickv1.ErrMalformedTick("missing timestamp", "timestamp")
}

func checkLevels(field string, levels []tickv1.ProviderLevel) error {
	for i, level := range levels {
		if level.Price < 0 || level.Quantity < 0 {
			return tickv1.ErrMalformedTick(fmt.Sprintf("negative price or quantity at level %d", i), field)
		}
	}
	return nil
}

// fill copies levels into fixed-length arrays, zero-filling the tail.
func fill(levels []tickv1.ProviderLevel, depth int) ([]float64, []int64) {
	prices := make([]float64, depth)
	quantities := make([]int64, depth)
	for i, level := range levels {
		prices[i] = level.Price
		quantities[i] = level.Quantity
	}
	return prices, quantities
}

func toMicros(ts time.Time) time.Time {
	return ts.UTC().Truncate(time.Microsecond)
}
