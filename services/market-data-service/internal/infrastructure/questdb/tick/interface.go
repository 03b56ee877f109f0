package tick

import (
	"context"
)

// TickRepository is the interface for the tick archive.
//
//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock
type TickRepository interface {
	EnsureSchema(ctx context.Context) error
	GetByFilter(ctx context.Context, filter Filter) ([]*Tick, error)
	Store(ctx context.Context, tick *Tick) error
}
