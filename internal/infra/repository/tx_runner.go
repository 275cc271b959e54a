package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/domain/inventory"
)

var (
	_ appointment.TxRunner     = (*TxRunner)(nil)
	_ inventory.LedgerTxRunner = (*TxRunner)(nil)
)

// TxRunner executa callbacks numa transação gorm, entregando repositórios atados a ela.
// Erro devolvido por fn faz rollback.
type TxRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) Run(ctx context.Context, fn func(tx appointment.TxRepositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(appointment.TxRepositories{
			Appointments: NewAppointmentGormRepository(tx),
			Ledger:       NewInventoryGormRepository(tx),
		})
	})
}

// RunLedger abre a transação só com o razão, para movimentações manuais.
func (r *TxRunner) RunLedger(ctx context.Context, fn func(ledger inventory.LedgerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewInventoryGormRepository(tx))
	})
}
