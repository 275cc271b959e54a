package appointment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/studio-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

type OperatingHoursInput struct {
	BusinessID uint
	UserID     uint

	SlotInterval string
	Weekly       []models.WeekdayHours
	Blocks       []models.AgendaBlock
}

type OperatingHours struct {
	deps Deps
}

func NewOperatingHours(deps Deps) *OperatingHours {
	return &OperatingHours{deps: deps}
}

// Get devolve a agenda configurada; nil quando ainda não existe.
func (uc *OperatingHours) Get(ctx context.Context, businessID, userID uint) (*models.OperatingHours, error) {
	if _, err := authorizeOwner(ctx, uc.deps.Repo, businessID, userID); err != nil {
		return nil, err
	}
	return uc.deps.Repo.GetOperatingHours(ctx, businessID)
}

// Update substitui a agenda semanal e os bloqueios e descarta as grades em cache.
func (uc *OperatingHours) Update(ctx context.Context, in OperatingHoursInput) (*models.OperatingHours, error) {
	if _, err := authorizeOwner(ctx, uc.deps.Repo, in.BusinessID, in.UserID); err != nil {
		return nil, err
	}

	oh := &models.OperatingHours{
		BusinessID:   in.BusinessID,
		SlotInterval: in.SlotInterval,
		Weekly:       in.Weekly,
		Blocks:       in.Blocks,
	}
	if oh.SlotInterval == "" {
		oh.SlotInterval = domain.FormatHM(domain.DefaultDurationMinutes)
	}
	if oh.Blocks == nil {
		oh.Blocks = []models.AgendaBlock{}
	}

	if err := domain.ValidateOperatingHours(oh); err != nil {
		return nil, err
	}

	if err := uc.deps.Repo.SaveOperatingHours(ctx, oh); err != nil {
		return nil, fmt.Errorf("save operating hours: %w", err)
	}

	if uc.deps.Cache != nil {
		uc.deps.Cache.InvalidateBusiness(ctx, in.BusinessID)
	}

	uc.deps.record(audit.Event{
		BusinessID: in.BusinessID,
		UserID:     &in.UserID,
		Action:     "operating_hours_updated",
		Entity:     "operating_hours",
		EntityID:   &oh.ID,
	})

	return oh, nil
}
