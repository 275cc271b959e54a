package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/timezone"
)

type GetAvailability struct {
	deps Deps
}

func NewGetAvailability(deps Deps) *GetAvailability {
	return &GetAvailability{deps: deps}
}

// Execute devolve a grade de horários da data (YYYY-MM-DD) no fuso da agenda.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	businessID uint,
	date string,
) (*domain.Grid, error) {

	if _, err := uc.deps.Repo.GetBusinessByID(ctx, businessID); err != nil {
		return nil, err
	}

	day, err := timezone.ParseDate(uc.deps.loc(), date)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	key := day.Format(domain.DateLayout)

	var version string
	if uc.deps.Cache != nil {
		grid, v, ok := uc.deps.Cache.Get(ctx, businessID, key)
		if ok {
			return grid, nil
		}
		version = v
	}

	oh, err := uc.deps.Repo.GetOperatingHours(ctx, businessID)
	if err != nil {
		return nil, err
	}

	start, end := domain.DayBounds(day)
	aps, err := uc.deps.Repo.ListAppointmentsForPeriod(ctx, businessID, &start, &end)
	if err != nil {
		return nil, err
	}

	grid := domain.GenerateSlots(oh, day, domain.BookedOnDay(aps, day, uc.deps.loc()))

	if uc.deps.Cache != nil {
		uc.deps.Cache.Set(ctx, businessID, key, version, &grid)
	}
	return &grid, nil
}
