package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/studio-scheduler/internal/domain/inventory"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

type Repository interface {
	// -------- Business --------
	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	GetBusinessOwner(
		ctx context.Context,
		businessID uint,
	) (*models.User, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		businessID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Operating calendar --------
	// GetOperatingHours devolve nil, nil quando o estabelecimento não configurou horários.
	GetOperatingHours(
		ctx context.Context,
		businessID uint,
	) (*models.OperatingHours, error)

	SaveOperatingHours(
		ctx context.Context,
		oh *models.OperatingHours,
	) error

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		businessID uint,
		start *time.Time,
		end *time.Time,
	) ([]models.Appointment, error)

	SumRevenue(
		ctx context.Context,
		businessID uint,
		start *time.Time,
		end *time.Time,
	) (float64, error)
}

// TxRepository roda atado a uma transação aberta pelo TxRunner.
type TxRepository interface {
	// LockBusinessDay serializa reservas concorrentes do mesmo estabelecimento/dia.
	LockBusinessDay(
		ctx context.Context,
		businessID uint,
		day time.Time,
	) error

	ListActiveAppointmentsForDay(
		ctx context.Context,
		businessID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// GetOrCreateClient roda depois da checagem de conflito: reserva recusada não deixa cliente.
	GetOrCreateClient(
		ctx context.Context,
		businessID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// GetAppointmentForUpdate relê a linha bloqueando-a até o fim da transação.
	GetAppointmentForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error
}

type TxRepositories struct {
	Appointments TxRepository
	Ledger       inventory.LedgerRepository
}

// TxRunner executa fn numa transação; qualquer erro desfaz tudo.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepositories) error) error
}

// SlotCache guarda grades de horários já calculadas. Get devolve a versão lida
// mesmo num miss; Set só grava sob essa versão, então uma grade calculada antes
// de um Invalidate nunca volta a ser servida.
type SlotCache interface {
	Get(ctx context.Context, businessID uint, date string) (grid *Grid, version string, ok bool)
	Set(ctx context.Context, businessID uint, date, version string, grid *Grid)
	Invalidate(ctx context.Context, businessID uint, date string)
	InvalidateBusiness(ctx context.Context, businessID uint)
}
