package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/studio-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/inventory"
	"github.com/BruksfildServices01/studio-scheduler/internal/metrics"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
	"github.com/BruksfildServices01/studio-scheduler/internal/notify"
)

// OwnerLookup resolve o dono do negócio para checar permissão e preferências.
type OwnerLookup interface {
	GetBusinessOwner(ctx context.Context, businessID uint) (*models.User, error)
}

type Items struct {
	repo     domain.Repository
	tx       domain.LedgerTxRunner
	owners   OwnerLookup
	notifier notify.Notifier
	audit    audit.Recorder
	metrics  *metrics.Collector
	log      zerolog.Logger
}

func NewItems(
	repo domain.Repository,
	tx domain.LedgerTxRunner,
	owners OwnerLookup,
	notifier notify.Notifier,
	rec audit.Recorder,
	m *metrics.Collector,
	log zerolog.Logger,
) *Items {
	return &Items{
		repo:     repo,
		tx:       tx,
		owners:   owners,
		notifier: notifier,
		audit:    rec,
		metrics:  m,
		log:      log,
	}
}

func (uc *Items) authorize(ctx context.Context, businessID, userID uint) (*models.User, error) {
	owner, err := uc.owners.GetBusinessOwner(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrBusinessNotFound
	}
	if owner.ID != userID {
		return nil, domain.ErrNotOwner
	}
	return owner, nil
}

// ======================================================
// CRUD
// ======================================================

type CreateItemInput struct {
	BusinessID uint
	UserID     uint

	Name             string
	Unit             string
	SecondaryUnit    string
	ConversionFactor *decimal.Decimal
	CurrentQuantity  decimal.Decimal
	MinQuantity      decimal.Decimal
}

func (uc *Items) Create(ctx context.Context, in CreateItemInput) (*models.InventoryItem, error) {
	if _, err := uc.authorize(ctx, in.BusinessID, in.UserID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || in.CurrentQuantity.IsNegative() || in.MinQuantity.IsNegative() {
		return nil, domain.ErrInvalidMovement
	}
	if in.ConversionFactor != nil && !in.ConversionFactor.IsPositive() {
		return nil, domain.ErrInvalidMovement
	}

	item := &models.InventoryItem{
		BusinessID:      in.BusinessID,
		Name:            name,
		Unit:            strings.TrimSpace(in.Unit),
		SecondaryUnit:   strings.TrimSpace(in.SecondaryUnit),
		CurrentQuantity: in.CurrentQuantity,
		MinQuantity:     in.MinQuantity,
	}
	if in.ConversionFactor != nil {
		item.ConversionFactor = decimal.NewNullDecimal(*in.ConversionFactor)
	}

	if err := uc.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create inventory item: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		UserID:     &in.UserID,
		Action:     "inventory_item_created",
		Entity:     "inventory_item",
		EntityID:   &item.ID,
		Metadata:   map[string]any{"name": item.Name},
	})

	return item, nil
}

// UpdateItemInput altera apenas o cadastro. O saldo só muda por movimentação.
type UpdateItemInput struct {
	BusinessID uint
	UserID     uint
	ItemID     uint

	Name             *string
	Unit             *string
	SecondaryUnit    *string
	ConversionFactor *decimal.Decimal
	MinQuantity      *decimal.Decimal
}

func (uc *Items) Update(ctx context.Context, in UpdateItemInput) (*models.InventoryItem, error) {
	if _, err := uc.authorize(ctx, in.BusinessID, in.UserID); err != nil {
		return nil, err
	}

	item, err := uc.repo.GetItem(ctx, in.BusinessID, in.ItemID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidMovement
		}
		item.Name = name
	}
	if in.Unit != nil {
		item.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.SecondaryUnit != nil {
		item.SecondaryUnit = strings.TrimSpace(*in.SecondaryUnit)
	}
	if in.ConversionFactor != nil {
		if in.ConversionFactor.IsZero() {
			item.ConversionFactor = decimal.NullDecimal{}
		} else if in.ConversionFactor.IsNegative() {
			return nil, domain.ErrInvalidMovement
		} else {
			item.ConversionFactor = decimal.NewNullDecimal(*in.ConversionFactor)
		}
	}
	if in.MinQuantity != nil {
		if in.MinQuantity.IsNegative() {
			return nil, domain.ErrInvalidMovement
		}
		item.MinQuantity = *in.MinQuantity
	}

	if err := uc.repo.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("update inventory item: %w", err)
	}
	return item, nil
}

func (uc *Items) Delete(ctx context.Context, businessID, userID, itemID uint) error {
	if _, err := uc.authorize(ctx, businessID, userID); err != nil {
		return err
	}
	if _, err := uc.repo.GetItem(ctx, businessID, itemID); err != nil {
		return err
	}
	if err := uc.repo.DeleteItem(ctx, businessID, itemID); err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &userID,
		Action:     "inventory_item_deleted",
		Entity:     "inventory_item",
		EntityID:   &itemID,
	})
	return nil
}

func (uc *Items) List(ctx context.Context, businessID, userID uint) ([]models.InventoryItem, error) {
	if _, err := uc.authorize(ctx, businessID, userID); err != nil {
		return nil, err
	}
	return uc.repo.ListItems(ctx, businessID)
}

// ======================================================
// MOVEMENTS
// ======================================================

const defaultLogLimit = 100

type MovementInput struct {
	BusinessID uint
	UserID     uint
	ItemID     uint

	Type     string
	Quantity decimal.Decimal
	// Unit igual à unidade secundária do item converte para a base.
	Unit   string
	Reason string
}

// RegisterMovement lança uma entrada ou saída manual no razão e ajusta o saldo na
// mesma transação.
func (uc *Items) RegisterMovement(ctx context.Context, in MovementInput) (*models.InventoryItem, error) {
	owner, err := uc.authorize(ctx, in.BusinessID, in.UserID)
	if err != nil {
		return nil, err
	}

	kind := strings.ToUpper(strings.TrimSpace(in.Type))
	if kind != models.InventoryLogEntry && kind != models.InventoryLogExit {
		return nil, domain.ErrInvalidMovement
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidMovement
	}

	// o item precisa ser do negócio antes de abrir a transação
	if _, err := uc.repo.GetItem(ctx, in.BusinessID, in.ItemID); err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = "Movimentação manual"
	}
	if domain.IsReservedReason(reason) {
		return nil, domain.ErrReservedReason
	}

	var (
		updated *models.InventoryItem
		low     bool
	)

	err = uc.tx.RunLedger(ctx, func(ledger domain.LedgerRepository) error {
		item, err := ledger.GetItemForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil || item.BusinessID != in.BusinessID {
			return domain.ErrItemNotFound
		}

		qty := domain.ToBaseUnit(models.ServiceResource{Quantity: in.Quantity, Unit: in.Unit}, item)

		if kind == models.InventoryLogExit {
			if item.CurrentQuantity.LessThan(qty) {
				return domain.ErrInsufficientStock
			}
			item.CurrentQuantity = item.CurrentQuantity.Sub(qty)
		} else {
			item.CurrentQuantity = item.CurrentQuantity.Add(qty)
		}

		if err := ledger.UpdateItemQuantity(ctx, item); err != nil {
			return err
		}
		if err := ledger.AppendLog(ctx, &models.InventoryLog{
			InventoryID: item.ID,
			BusinessID:  in.BusinessID,
			Type:        kind,
			Quantity:    qty,
			Reason:      reason,
		}); err != nil {
			return err
		}

		updated = item
		low = kind == models.InventoryLogExit && domain.IsLowStock(item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.LedgerEntry(kind)

	uc.audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		UserID:     &in.UserID,
		Action:     "inventory_movement",
		Entity:     "inventory_item",
		EntityID:   &updated.ID,
		Metadata: map[string]any{
			"type":     kind,
			"quantity": in.Quantity.String(),
			"reason":   reason,
		},
	})

	if low && owner.NotifyLowStock {
		uc.metrics.LowStockAlert()
		uc.notifier.Notify(LowStockMessage(owner.ID, LowStockAlert{
			InventoryID: updated.ID,
			Name:        updated.Name,
			Quantity:    domain.DisplayQuantity(updated),
			MinQuantity: updated.MinQuantity,
			Unit:        domain.DisplayUnit(updated),
		}))
	}

	return updated, nil
}

func (uc *Items) ListLogs(ctx context.Context, businessID, userID, itemID uint, limit int) ([]models.InventoryLog, error) {
	if _, err := uc.authorize(ctx, businessID, userID); err != nil {
		return nil, err
	}
	if _, err := uc.repo.GetItem(ctx, businessID, itemID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 500 {
		limit = defaultLogLimit
	}
	return uc.repo.ListLogsByProduct(ctx, itemID, limit)
}
