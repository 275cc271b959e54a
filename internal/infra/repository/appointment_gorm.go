package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var b models.Business
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *AppointmentGormRepository) GetBusinessOwner(
	ctx context.Context,
	businessID uint,
) (*models.User, error) {

	b, err := r.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	var owner models.User
	if err := r.db.WithContext(ctx).First(&owner, b.OwnerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, err
	}
	return &owner, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	businessID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", serviceID, businessID).
		First(&svc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	businessID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	q := r.db.WithContext(ctx).Where("business_id = ?", businessID)
	if phone != "" {
		q = q.Where("phone = ?", phone)
	} else {
		q = q.Where("email = ?", email)
	}

	var client models.Client
	err := q.First(&client).Error
	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		BusinessID: businessID,
		Name:       name,
		Phone:      phone,
		Email:      email,
	}
	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Operating hours
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOperatingHours(
	ctx context.Context,
	businessID uint,
) (*models.OperatingHours, error) {

	var oh models.OperatingHours
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		First(&oh).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &oh, nil
}

func (r *AppointmentGormRepository) SaveOperatingHours(
	ctx context.Context,
	oh *models.OperatingHours,
) error {

	// uma linha por negócio
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "business_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"slot_interval", "weekly", "blocks", "updated_at"}),
		}).
		Create(oh).Error
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services", orderedLines).
		First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	businessID uint,
	start *time.Time,
	end *time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Services", orderedLines).
		Where("business_id = ?", businessID)
	if start != nil {
		q = q.Where("scheduled_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("scheduled_at < ?", *end)
	}

	var apps []models.Appointment
	if err := q.Order("scheduled_at ASC, id ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) SumRevenue(
	ctx context.Context,
	businessID uint,
	start *time.Time,
	end *time.Time,
) (float64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("COALESCE(SUM(price), 0)").
		Where("business_id = ? AND status = ?", businessID, string(domain.StatusCompleted))
	if start != nil {
		q = q.Where("scheduled_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("scheduled_at < ?", *end)
	}

	var total float64
	if err := q.Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// --------------------------------------------------
// Appointment (transação)
// --------------------------------------------------

// LockBusinessDay usa um advisory lock de transação: duas reservas do mesmo
// negócio no mesmo dia esperam uma pela outra até o commit.
func (r *AppointmentGormRepository) LockBusinessDay(
	ctx context.Context,
	businessID uint,
	day time.Time,
) error {

	y, m, d := day.Date()
	dayKey := int32(y*10000 + int(m)*100 + d)

	if err := r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(?, ?)", int32(businessID), dayKey).Error; err != nil {
		return fmt.Errorf("lock business day: %w", err)
	}
	return nil
}

func (r *AppointmentGormRepository) ListActiveAppointmentsForDay(
	ctx context.Context,
	businessID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "business_id", "scheduled_at", "duration", "status").
		Where(
			"business_id = ? AND status <> ? AND scheduled_at >= ? AND scheduled_at < ?",
			businessID, string(domain.StatusCancelled), start, end,
		).
		Order("scheduled_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	// as linhas de Services são gravadas junto pela associação
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointmentForUpdate(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Services", orderedLines).
		First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Updates(map[string]any{
			"status":       ap.Status,
			"completed_at": ap.CompletedAt,
			"cancelled_at": ap.CancelledAt,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error
}

// Compile-time check
var (
	_ domain.Repository   = (*AppointmentGormRepository)(nil)
	_ domain.TxRepository = (*AppointmentGormRepository)(nil)
)
