package archive

import (
	"context"
	"slices"

	"github.com/muhammadchandra19/marketdepth/pkg/errors"
	archivev1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/archive/v1"
	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
	"github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/infrastructure/questdb/tick"
)

// DefaultLimit caps archive queries that do not set a limit.
const DefaultLimit = 1000

// Usecase writes ticks to the QuestDB archive and reads them back.
type Usecase struct {
	tickRepository tick.TickRepository
}

// NewUsecase creates a new archive usecase.
func NewUsecase(tickRepository tick.TickRepository) *Usecase {
	return &Usecase{tickRepository: tickRepository}
}

// Name identifies the archive in sink logs.
func (u *Usecase) Name() string {
	return "questdb"
}

// Consume archives one stored tick.
func (u *Usecase) Consume(ctx context.Context, t *tickv1.Tick) error {
	row, err := tick.FromDomain(t)
	if err != nil {
		return errors.TracerFromError(err)
	}
	if err := u.tickRepository.Store(ctx, row); err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}

// GetTicks returns the most recent archived ticks matching filter, oldest first.
func (u *Usecase) GetTicks(ctx context.Context, filter archivev1.Filter) ([]*tickv1.Tick, error) {
	if filter.InstrumentID == "" {
		return nil, errors.NewErrorDetails("instrument id is required", errors.GeneralBadRequestError.String(), "instrument_id")
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}

	rows, err := u.tickRepository.GetByFilter(ctx, tick.Filter{
		InstrumentID: filter.InstrumentID,
		From:         filter.Start,
		To:           filter.End,
		Limit:        filter.Limit,
	})
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	ticks := make([]*tickv1.Tick, 0, len(rows))
	for _, row := range slices.Backward(rows) {
		t, err := row.ToDomain()
		if err != nil {
			return nil, errors.TracerFromError(err)
		}
		ticks = append(ticks, t)
	}
	return ticks, nil
}
