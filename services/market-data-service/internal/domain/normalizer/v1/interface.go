package normalizerv1

import (
	"time"

	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
)

// Normalizer turns provider payloads into canonical ticks.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=normalizerv1_mock
type Normalizer interface {
	Normalize(payload *tickv1.ProviderTick, receivedAt time.Time) (*tickv1.Tick, Outcome, error)
	Policy() PaddingPolicy
}
