package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/studio-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
	"github.com/BruksfildServices01/studio-scheduler/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	BusinessID uint

	// "1,2,3": o primeiro é o serviço principal
	ServiceIDs string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	ScheduledAt time.Time
	Notes       string

	// presente apenas em reservas feitas pela equipe
	ActingUserID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	deps Deps
}

func NewCreateAppointment(deps Deps) *CreateAppointment {
	return &CreateAppointment{deps: deps}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Appointment, error) {

	repo := uc.deps.Repo
	loc := uc.deps.loc()

	// --------------------------------------------------
	// 1️⃣ Negócio
	// --------------------------------------------------
	business, err := repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	owner, err := repo.GetBusinessOwner(ctx, business.ID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Reserva pela equipe exige o dono
	// --------------------------------------------------
	if in.ActingUserID != nil && *in.ActingUserID != owner.ID {
		return nil, domain.ErrNotOwner
	}

	// --------------------------------------------------
	// 3️⃣ Serviços do pacote
	// --------------------------------------------------
	ids, err := domain.ParseServiceIDs(in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	services := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		svc, err := repo.GetService(ctx, business.ID, id)
		if err != nil {
			return nil, err
		}
		if svc.BusinessID != business.ID {
			return nil, domain.ErrServiceNotFound
		}
		services = append(services, *svc)
	}

	// --------------------------------------------------
	// 4️⃣ Agregação
	// --------------------------------------------------
	bundle := domain.AggregateServices(services)

	if in.ScheduledAt.IsZero() {
		return nil, domain.ErrInvalidDate
	}
	local := in.ScheduledAt.In(loc)

	// --------------------------------------------------
	// 5️⃣ Montagem (serviço principal + linhas do pacote)
	// --------------------------------------------------
	ap := &models.Appointment{
		BusinessID:    business.ID,
		ServiceID:     bundle.ServiceIDs[0],
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerEmail: strings.TrimSpace(in.CustomerEmail),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		ServiceName:   bundle.Name,
		Price:         bundle.TotalPrice,
		Duration:      domain.FormatHM(bundle.TotalMinutes),
		ScheduledAt:   in.ScheduledAt.UTC(),
		Status:        string(domain.InitialStatus()),
		Notes:         domain.NotesWithServiceIDs(strings.TrimSpace(in.Notes), bundle.ServiceIDs),
		Services:      bundle.Lines,
	}

	// --------------------------------------------------
	// 6️⃣ Expediente do dia
	// --------------------------------------------------
	oh, err := repo.GetOperatingHours(ctx, business.ID)
	if err != nil {
		return nil, err
	}
	day, ok := domain.OpenDay(oh, local.Weekday())
	if !ok {
		return nil, domain.ErrClosedDay
	}

	// --------------------------------------------------
	// 7️⃣ Cabe inteiro em um expediente
	// --------------------------------------------------
	startMin := domain.MinuteOfDay(local)
	if !domain.FitsWindow(day, startMin, bundle.TotalMinutes) {
		return nil, domain.ErrOutsideHours
	}

	// --------------------------------------------------
	// 8️⃣ + 9️⃣ Conflito e gravação na mesma transação
	// --------------------------------------------------
	err = uc.deps.Tx.Run(ctx, func(tx domain.TxRepositories) error {
		if err := tx.Appointments.LockBusinessDay(ctx, business.ID, local); err != nil {
			return err
		}

		dayStart, dayEnd := domain.DayBounds(local)
		existing, err := tx.Appointments.ListActiveAppointmentsForDay(ctx, business.ID, dayStart, dayEnd)
		if err != nil {
			return err
		}

		booked := domain.BookedOnDay(existing, local, loc)
		if domain.HasConflict(startMin, bundle.TotalMinutes, booked) {
			return domain.ErrSlotOccupied
		}

		if ap.CustomerPhone != "" || ap.CustomerEmail != "" {
			client, err := tx.Appointments.GetOrCreateClient(ctx, business.ID, ap.CustomerName, ap.CustomerPhone, ap.CustomerEmail)
			if err != nil {
				return fmt.Errorf("get or create client: %w", err)
			}
			ap.ClientID = &client.ID
		}

		return tx.Appointments.CreateAppointment(ctx, ap)
	})
	if err != nil {
		if httperr.IsExclusionConflict(err) || httperr.IsSerializationFailure(err) {
			err = domain.ErrSlotOccupied
		}
		if errors.Is(err, domain.ErrSlotOccupied) {
			uc.deps.Metrics.AppointmentConflict()
		}
		return nil, err
	}

	uc.deps.Metrics.AppointmentCreated()
	uc.deps.invalidateDay(ctx, business.ID, ap.ScheduledAt)

	uc.deps.record(audit.Event{
		BusinessID: business.ID,
		UserID:     in.ActingUserID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"service_ids":  bundle.ServiceIDs,
			"scheduled_at": ap.ScheduledAt,
			"price":        ap.Price,
		},
	})

	// --------------------------------------------------
	// 🔟 Aviso ao dono (melhor esforço)
	// --------------------------------------------------
	if owner.NotifyNewAppointment {
		uc.deps.send(notify.Message{
			UserID: owner.ID,
			Title:  "Novo agendamento",
			Body: fmt.Sprintf(
				"%s agendou %s para %s.",
				displayName(ap.CustomerName),
				ap.ServiceName,
				local.Format("02/01 às 15:04"),
			),
		})
	}

	uc.deps.Log.Info().
		Uint("business_id", business.ID).
		Uint("appointment_id", ap.ID).
		Time("scheduled_at", ap.ScheduledAt).
		Int("duration_min", bundle.TotalMinutes).
		Msg("appointment created")

	return ap, nil
}

func displayName(name string) string {
	if name == "" {
		return "Cliente"
	}
	return name
}
