package appointment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/studio-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
	"github.com/BruksfildServices01/studio-scheduler/internal/notify"
	inventoryuc "github.com/BruksfildServices01/studio-scheduler/internal/usecase/inventory"
)

type UpdateStatusInput struct {
	AppointmentID uint
	UserID        uint
	Status        string
}

type UpdateStatus struct {
	deps Deps
}

func NewUpdateStatus(deps Deps) *UpdateStatus {
	return &UpdateStatus{deps: deps}
}

// Execute troca o status. Entrar em COMPLETED dá baixa no estoque e sair de
// COMPLETED devolve o saldo, tudo na mesma transação da escrita do status.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	next, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	ap, err := uc.deps.Repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	owner, err := authorizeOwner(ctx, uc.deps.Repo, ap.BusinessID, in.UserID)
	if err != nil {
		return nil, err
	}

	var (
		previous domain.Status
		updated  *models.Appointment
		alerts   []inventoryuc.LowStockAlert
	)

	err = uc.deps.Tx.Run(ctx, func(tx domain.TxRepositories) error {
		// relido sob lock: o status de antes da transação não vale
		cur, err := tx.Appointments.GetAppointmentForUpdate(ctx, ap.ID)
		if err != nil {
			return err
		}
		previous = domain.Status(cur.Status)
		updated = cur

		if previous == next {
			return nil
		}

		serviceIDs := domain.BundleServiceIDs(cur)

		switch domain.TransitionEffect(previous, next) {
		case domain.StockConsume:
			alerts, err = uc.deps.Ledger.Consume(ctx, tx.Ledger, cur, serviceIDs)
		case domain.StockReverse:
			err = uc.deps.Ledger.Reverse(ctx, tx.Ledger, cur, serviceIDs)
		}
		if err != nil {
			return fmt.Errorf("inventory for appointment %d: %w", cur.ID, err)
		}

		domain.ApplyStatus(cur, next, uc.deps.now())
		return tx.Appointments.UpdateAppointmentStatus(ctx, cur)
	})
	if err != nil {
		return nil, err
	}

	if previous == next {
		return updated, nil
	}

	// --------------------------------------------------
	// Pós-commit: nada aqui desfaz a transição
	// --------------------------------------------------
	uc.deps.Metrics.StatusTransition(string(previous), string(next))
	uc.deps.invalidateDay(ctx, updated.BusinessID, updated.ScheduledAt)

	uc.deps.record(audit.Event{
		BusinessID: updated.BusinessID,
		UserID:     &in.UserID,
		Action:     "appointment_status_changed",
		Entity:     "appointment",
		EntityID:   &updated.ID,
		Metadata: map[string]any{
			"from": previous,
			"to":   next,
		},
	})

	if next == domain.StatusCancelled && previous != domain.StatusCancelled && owner.NotifyCancellation {
		uc.deps.send(notify.Message{
			UserID: owner.ID,
			Title:  "Agendamento cancelado",
			Body: fmt.Sprintf(
				"%s (%s) em %s foi cancelado.",
				displayName(updated.CustomerName),
				updated.ServiceName,
				updated.ScheduledAt.In(uc.deps.loc()).Format("02/01 às 15:04"),
			),
		})
	}

	for _, a := range alerts {
		uc.deps.Metrics.LowStockAlert()
		if owner.NotifyLowStock {
			uc.deps.send(inventoryuc.LowStockMessage(owner.ID, a))
		}
	}

	uc.deps.Log.Info().
		Uint("appointment_id", updated.ID).
		Str("from", string(previous)).
		Str("to", string(next)).
		Int("low_stock_alerts", len(alerts)).
		Msg("appointment status changed")

	return updated, nil
}
