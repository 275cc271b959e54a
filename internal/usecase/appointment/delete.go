package appointment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/studio-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
)

type DeleteAppointment struct {
	deps Deps
}

func NewDeleteAppointment(deps Deps) *DeleteAppointment {
	return &DeleteAppointment{deps: deps}
}

// Execute remove o agendamento. Se estava concluído, o saldo consumido volta ao
// estoque na mesma transação.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	userID uint,
) error {

	ap, err := uc.deps.Repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	if _, err := authorizeOwner(ctx, uc.deps.Repo, ap.BusinessID, userID); err != nil {
		return err
	}

	var reversed bool
	err = uc.deps.Tx.Run(ctx, func(tx domain.TxRepositories) error {
		cur, err := tx.Appointments.GetAppointmentForUpdate(ctx, ap.ID)
		if err != nil {
			return err
		}

		if domain.Status(cur.Status) == domain.StatusCompleted {
			if err := uc.deps.Ledger.Reverse(ctx, tx.Ledger, cur, domain.BundleServiceIDs(cur)); err != nil {
				return fmt.Errorf("inventory for appointment %d: %w", cur.ID, err)
			}
			reversed = true
		}

		return tx.Appointments.DeleteAppointment(ctx, cur.ID)
	})
	if err != nil {
		return err
	}

	uc.deps.invalidateDay(ctx, ap.BusinessID, ap.ScheduledAt)

	uc.deps.record(audit.Event{
		BusinessID: ap.BusinessID,
		UserID:     &userID,
		Action:     "appointment_deleted",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"status":         ap.Status,
			"stock_reversed": reversed,
		},
	})

	return nil
}
