package inventory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/inventory"
	"github.com/BruksfildServices01/studio-scheduler/internal/metrics"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

// LowStockAlert é produzido quando um item cruza o mínimo durante a baixa.
// O envio acontece fora da transação.
type LowStockAlert struct {
	InventoryID uint
	Name        string
	Quantity    decimal.Decimal
	MinQuantity decimal.Decimal
	Unit        string
}

// Ledger movimenta o estoque ligado a um agendamento. Sempre roda dentro da
// transação de quem chama: status, saldo e razão são gravados juntos.
type Ledger struct {
	metrics *metrics.Collector
	log     zerolog.Logger
}

func NewLedger(m *metrics.Collector, log zerolog.Logger) *Ledger {
	return &Ledger{metrics: m, log: log}
}

// ======================================================
// CONSUME
// ======================================================

// Consume dá baixa nos recursos dos serviços do pacote e grava uma saída por recurso.
// Devolve no máximo um alerta por produto.
func (l *Ledger) Consume(
	ctx context.Context,
	repo domain.LedgerRepository,
	ap *models.Appointment,
	serviceIDs []uint,
) ([]LowStockAlert, error) {

	resources, err := repo.ListServiceResources(ctx, serviceIDs)
	if err != nil {
		return nil, fmt.Errorf("list service resources: %w", err)
	}

	var alerts []LowStockAlert
	alerted := make(map[uint]bool)
	reason := domain.ConsumeReason(ap.ID)

	for _, res := range domain.SelectForConsumption(serviceIDs, resources) {
		item, err := repo.GetItemForUpdate(ctx, res.InventoryID)
		if err != nil {
			return nil, fmt.Errorf("lock inventory item %d: %w", res.InventoryID, err)
		}
		if item == nil || item.BusinessID != ap.BusinessID {
			continue
		}

		qty := domain.ToBaseUnit(res, item)
		if qty.IsZero() {
			continue
		}

		item.CurrentQuantity = item.CurrentQuantity.Sub(qty)
		if err := repo.UpdateItemQuantity(ctx, item); err != nil {
			return nil, fmt.Errorf("update inventory item %d: %w", item.ID, err)
		}

		if err := l.appendLog(ctx, repo, ap, item.ID, models.InventoryLogExit, qty, reason); err != nil {
			return nil, err
		}

		if domain.IsLowStock(item) && !alerted[item.ID] {
			alerted[item.ID] = true
			alerts = append(alerts, LowStockAlert{
				InventoryID: item.ID,
				Name:        item.Name,
				Quantity:    domain.DisplayQuantity(item),
				MinQuantity: item.MinQuantity,
				Unit:        domain.DisplayUnit(item),
			})
		}
	}

	return alerts, nil
}

// ======================================================
// REVERSE
// ======================================================

// Reverse devolve ao estoque o saldo pendente do agendamento, calculado a partir do
// próprio razão (saídas de conclusão menos entradas de reversão). Chamar duas vezes
// seguidas não devolve nada na segunda.
func (l *Ledger) Reverse(
	ctx context.Context,
	repo domain.LedgerRepository,
	ap *models.Appointment,
	serviceIDs []uint,
) error {

	logs, err := repo.ListAppointmentLogs(ctx, ap.ID)
	if err != nil {
		return fmt.Errorf("list appointment logs: %w", err)
	}

	balance := domain.BalanceFromLogs(ap.ID, logs)

	if !balance.HasConsumption() {
		if balance.HasReversal() {
			return nil
		}
		return l.reverseFromConfig(ctx, repo, ap, serviceIDs)
	}

	reason := domain.RevertReason(ap.ID)
	for _, pending := range balance.Outstanding() {
		if err := l.restore(ctx, repo, ap, pending, reason); err != nil {
			return err
		}
	}
	return nil
}

// reverseFromConfig cobre agendamentos antigos concluídos antes do razão existir:
// recalcula a baixa pela configuração atual dos serviços.
func (l *Ledger) reverseFromConfig(
	ctx context.Context,
	repo domain.LedgerRepository,
	ap *models.Appointment,
	serviceIDs []uint,
) error {

	resources, err := repo.ListServiceResources(ctx, serviceIDs)
	if err != nil {
		return fmt.Errorf("list service resources: %w", err)
	}

	var order []uint
	totals := make(map[uint]decimal.Decimal)

	for _, res := range domain.SelectForConsumption(serviceIDs, resources) {
		item, err := repo.GetItemForUpdate(ctx, res.InventoryID)
		if err != nil {
			return fmt.Errorf("lock inventory item %d: %w", res.InventoryID, err)
		}
		if item == nil || item.BusinessID != ap.BusinessID {
			continue
		}
		qty := domain.ToBaseUnit(res, item)
		if qty.IsZero() {
			continue
		}
		if _, ok := totals[item.ID]; !ok {
			order = append(order, item.ID)
		}
		totals[item.ID] = totals[item.ID].Add(qty)
	}

	if len(order) > 0 {
		l.log.Warn().
			Uint("appointment_id", ap.ID).
			Int("items", len(order)).
			Msg("no consumption in ledger, reversing from current service resources")
	}

	reason := domain.RecomputedRevertReason(ap.ID)
	for _, id := range order {
		pending := domain.ItemBalance{InventoryID: id, Quantity: totals[id]}
		if err := l.restore(ctx, repo, ap, pending, reason); err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) restore(
	ctx context.Context,
	repo domain.LedgerRepository,
	ap *models.Appointment,
	pending domain.ItemBalance,
	reason string,
) error {

	item, err := repo.GetItemForUpdate(ctx, pending.InventoryID)
	if err != nil {
		return fmt.Errorf("lock inventory item %d: %w", pending.InventoryID, err)
	}
	if item == nil {
		// item removido depois da baixa: nada a devolver
		return nil
	}

	item.CurrentQuantity = item.CurrentQuantity.Add(pending.Quantity)
	if err := repo.UpdateItemQuantity(ctx, item); err != nil {
		return fmt.Errorf("update inventory item %d: %w", item.ID, err)
	}

	return l.appendLog(ctx, repo, ap, item.ID, models.InventoryLogEntry, pending.Quantity, reason)
}

func (l *Ledger) appendLog(
	ctx context.Context,
	repo domain.LedgerRepository,
	ap *models.Appointment,
	itemID uint,
	kind string,
	qty decimal.Decimal,
	reason string,
) error {

	apID := ap.ID
	entry := &models.InventoryLog{
		InventoryID:   itemID,
		BusinessID:    ap.BusinessID,
		AppointmentID: &apID,
		Type:          kind,
		Quantity:      qty,
		Reason:        reason,
	}
	if err := repo.AppendLog(ctx, entry); err != nil {
		return fmt.Errorf("append inventory log: %w", err)
	}

	l.metrics.LedgerEntry(kind)
	return nil
}
