package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/dto"
	"github.com/BruksfildServices01/studio-scheduler/internal/timezone"
)

type ListInput struct {
	BusinessID uint
	UserID     uint
	StartDate  string
	EndDate    string
}

// ListResult traz a lista, ou a grade quando o período é um único dia.
type ListResult struct {
	Appointments []dto.AppointmentListDTO
	Grid         *domain.Grid
}

type ListAppointments struct {
	deps         Deps
	availability *GetAvailability
}

func NewListAppointments(deps Deps) *ListAppointments {
	return &ListAppointments{
		deps:         deps,
		availability: NewGetAvailability(deps),
	}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListInput,
) (*ListResult, error) {

	if _, err := authorizeOwner(ctx, uc.deps.Repo, in.BusinessID, in.UserID); err != nil {
		return nil, err
	}

	if in.StartDate != "" && in.StartDate == in.EndDate {
		grid, err := uc.availability.Execute(ctx, in.BusinessID, in.StartDate)
		if err != nil {
			return nil, err
		}
		return &ListResult{Grid: grid}, nil
	}

	start, end, err := periodBounds(uc.deps.loc(), in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	aps, err := uc.deps.Repo.ListAppointmentsForPeriod(ctx, in.BusinessID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(aps))
	for i := range aps {
		ap := &aps[i]
		minutes := domain.ParseDurationMinutes(ap.Duration)
		out = append(out, dto.AppointmentListDTO{
			ID:           ap.ID,
			ScheduledAt:  ap.ScheduledAt,
			EndsAt:       ap.ScheduledAt.Add(time.Duration(minutes) * time.Minute),
			Status:       ap.Status,
			CustomerName: ap.CustomerName,
			ServiceName:  ap.ServiceName,
			ServiceIDs:   domain.BundleServiceIDs(ap),
			Price:        ap.Price,
			DurationMin:  minutes,
		})
	}

	return &ListResult{Appointments: out}, nil
}

// periodBounds converte datas opcionais em [início, fim) no fuso da agenda; o fim
// inclui o dia inteiro de endDate.
func periodBounds(loc *time.Location, startDate, endDate string) (*time.Time, *time.Time, error) {
	var start, end *time.Time

	if startDate != "" {
		t, err := timezone.ParseDate(loc, startDate)
		if err != nil {
			return nil, nil, domain.ErrInvalidDate
		}
		start = &t
	}
	if endDate != "" {
		t, err := timezone.ParseDate(loc, endDate)
		if err != nil {
			return nil, nil, domain.ErrInvalidDate
		}
		t = t.AddDate(0, 0, 1)
		end = &t
	}
	if start != nil && end != nil && !start.Before(*end) {
		return nil, nil, domain.ErrInvalidDate
	}
	return start, end, nil
}
