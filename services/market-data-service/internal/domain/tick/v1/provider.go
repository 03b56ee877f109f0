package tickv1

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
)

// ProviderLevel is one price level as sent by the upstream feed.
type ProviderLevel struct {
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
	Orders   int64   `json:"orders"`
}

// ProviderDepth holds the buy and sell ladders, best price first.
type ProviderDepth struct {
	Buy  []ProviderLevel `json:"buy"`
	Sell []ProviderLevel `json:"sell"`
}

// ProviderTick is the provider-native payload for one instrument update.
type ProviderTick struct {
	InstrumentToken   InstrumentRef `json:"instrument_token"`
	LastPrice         float64       `json:"last_price"`
	VolumeTraded      int64         `json:"volume_traded"`
	Timestamp         *ProviderTime `json:"timestamp,omitempty"`
	ExchangeTimestamp *ProviderTime `json:"exchange_timestamp,omitempty"`
	OI                int64         `json:"oi"`
	OIDayHigh         int64         `json:"oi_day_high"`
	OIDayLow          int64         `json:"oi_day_low"`
	Depth             ProviderDepth `json:"depth"`
}

// InstrumentRef accepts either a JSON number or a JSON string.
type InstrumentRef string

// UnmarshalJSON implements json.Unmarshaler.
func (r *InstrumentRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("instrument_token: %w", err)
		}
		*r = InstrumentRef(s)
		return nil
	}
	if _, err := strconv.ParseUint(string(data), 10, 64); err != nil {
		return fmt.Errorf("instrument_token: %q is not a number or string", data)
	}
	*r = InstrumentRef(data)
	return nil
}

// ProviderTime accepts RFC 3339 strings, "2006-01-02 15:04:05" strings in UTC
// and integer unix epoch milliseconds.
type ProviderTime struct {
	time.Time
}

const providerLayout = "2006-01-02 15:04:05"

// UnmarshalJSON implements json.Unmarshaler.
func (p *ProviderTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || len(data) == 0 {
		p.Time = time.Time{}
		return nil
	}
	if data[0] != '"' {
		ms, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("timestamp: %w", err)
		}
		p.Time = time.UnixMilli(ms).UTC()
		return nil
	}

	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		p.Time = time.Time{}
		return nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		p.Time = ts.UTC()
		return nil
	}
	ts, err := time.ParseInLocation(providerLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("timestamp: unsupported format %q", s)
	}
	p.Time = ts
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p ProviderTime) MarshalJSON() ([]byte, error) {
	if p.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(p.UTC().Format(time.RFC3339Nano))), nil
}

// DecodeFrame decodes a text frame carrying either one payload object or an array of them.
func DecodeFrame(data []byte) ([]*ProviderTick, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var ticks []*ProviderTick
		if err := sonic.Unmarshal(data, &ticks); err != nil {
			return nil, ErrMalformedTick("cannot decode frame: "+err.Error(), "frame")
		}
		return ticks, nil
	}

	tick := &ProviderTick{}
	if err := sonic.Unmarshal(data, tick); err != nil {
		return nil, ErrMalformedTick("cannot decode frame: "+err.Error(), "frame")
	}
	return []*ProviderTick{tick}, nil
}
