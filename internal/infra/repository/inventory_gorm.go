package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/inventory"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// --------------------------------------------------
// Itens
// --------------------------------------------------

func (r *InventoryGormRepository) CreateItem(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *InventoryGormRepository) GetItem(ctx context.Context, businessID, itemID uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", itemID, businessID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *InventoryGormRepository) UpdateItem(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).
		Model(item).
		Select("name", "unit", "secondary_unit", "conversion_factor", "min_quantity", "updated_at").
		Updates(item).Error
}

func (r *InventoryGormRepository) DeleteItem(ctx context.Context, businessID, itemID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", itemID, businessID).
		Delete(&models.InventoryItem{}).Error
}

func (r *InventoryGormRepository) ListItems(ctx context.Context, businessID uint) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *InventoryGormRepository) ListLogsByProduct(ctx context.Context, itemID uint, limit int) ([]models.InventoryLog, error) {
	var logs []models.InventoryLog
	if err := r.db.WithContext(ctx).
		Where("inventory_id = ?", itemID).
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// --------------------------------------------------
// Razão (dentro da transação)
// --------------------------------------------------

func (r *InventoryGormRepository) ListServiceResources(ctx context.Context, serviceIDs []uint) ([]models.ServiceResource, error) {
	if len(serviceIDs) == 0 {
		return nil, nil
	}

	var res []models.ServiceResource
	if err := r.db.WithContext(ctx).
		Where("service_id IN ?", serviceIDs).
		Order("id ASC").
		Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

func (r *InventoryGormRepository) GetItemForUpdate(ctx context.Context, itemID uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *InventoryGormRepository) UpdateItemQuantity(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"current_quantity": item.CurrentQuantity,
			"updated_at":       time.Now(),
		}).Error
}

func (r *InventoryGormRepository) AppendLog(ctx context.Context, entry *models.InventoryLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListAppointmentLogs traz as linhas ligadas ao agendamento pela coluna ou, nas
// linhas antigas, pelo texto do motivo. O filtro fino fica no domínio.
func (r *InventoryGormRepository) ListAppointmentLogs(ctx context.Context, appointmentID uint) ([]models.InventoryLog, error) {
	token := fmt.Sprintf("%%Agendamento #%d %%", appointmentID)

	var logs []models.InventoryLog
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ? OR (appointment_id IS NULL AND reason LIKE ?)", appointmentID, token).
		Order("id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

var (
	_ domain.Repository       = (*InventoryGormRepository)(nil)
	_ domain.LedgerRepository = (*InventoryGormRepository)(nil)
)
