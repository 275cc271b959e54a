package inventory

import (
	"context"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

// LedgerRepository opera dentro de uma transação: saldo dos itens e razão mudam juntos.
type LedgerRepository interface {
	ListServiceResources(ctx context.Context, serviceIDs []uint) ([]models.ServiceResource, error)

	// GetItemForUpdate devolve nil, nil quando o item não existe mais.
	GetItemForUpdate(ctx context.Context, itemID uint) (*models.InventoryItem, error)
	UpdateItemQuantity(ctx context.Context, item *models.InventoryItem) error

	AppendLog(ctx context.Context, entry *models.InventoryLog) error
	ListAppointmentLogs(ctx context.Context, appointmentID uint) ([]models.InventoryLog, error)
}

type Repository interface {
	CreateItem(ctx context.Context, item *models.InventoryItem) error
	GetItem(ctx context.Context, businessID, itemID uint) (*models.InventoryItem, error)
	UpdateItem(ctx context.Context, item *models.InventoryItem) error
	DeleteItem(ctx context.Context, businessID, itemID uint) error
	ListItems(ctx context.Context, businessID uint) ([]models.InventoryItem, error)
	ListLogsByProduct(ctx context.Context, itemID uint, limit int) ([]models.InventoryLog, error)
}

// LedgerTxRunner executa fn numa transação com o razão atado a ela.
type LedgerTxRunner interface {
	RunLedger(ctx context.Context, fn func(ledger LedgerRepository) error) error
}
