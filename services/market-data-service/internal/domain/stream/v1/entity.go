package streamv1

import (
	"time"

	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
)

// Range selects stored ticks. Since and Until are inclusive bounds on the
// tick timestamp; LastN keeps only the most recent N matches. A zero Range
// selects everything retained.
type Range struct {
	Since *time.Time
	Until *time.Time
	LastN int
}

// Contains reports whether ts falls inside the time bounds.
func (r Range) Contains(ts time.Time) bool {
	if r.Since != nil && ts.Before(*r.Since) {
		return false
	}
	if r.Until != nil && ts.After(*r.Until) {
		return false
	}
	return true
}

// Retention holds the per depth level entry caps.
type Retention struct {
	Depth1Cap int64 `env:"DEPTH1_CAP" envDefault:"10000"`
	Depth5Cap int64 `env:"DEPTH5_CAP" envDefault:"5000"`
}

// DefaultRetention returns the stock caps: 10000 entries at depth 1, 5000 at depth 5.
func DefaultRetention() Retention {
	return Retention{Depth1Cap: 10000, Depth5Cap: 5000}
}

// CapFor returns the cap that applies to a tick of the given depth level.
func (r Retention) CapFor(depthLevel int) int64 {
	if depthLevel == tickv1.DepthLevel5 {
		return r.Depth5Cap
	}
	return r.Depth1Cap
}
