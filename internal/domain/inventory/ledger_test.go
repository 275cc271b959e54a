package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

func exit(item uint, qty, reason string) models.InventoryLog {
	return models.InventoryLog{InventoryID: item, Type: models.InventoryLogExit, Quantity: dec(qty), Reason: reason}
}

func entry(item uint, qty, reason string) models.InventoryLog {
	return models.InventoryLog{InventoryID: item, Type: models.InventoryLogEntry, Quantity: dec(qty), Reason: reason}
}

func TestBalance_OutstandingIsExitsMinusReversals(t *testing.T) {
	logs := []models.InventoryLog{
		exit(1, "3", ConsumeReason(7)),
		exit(2, "0.5", ConsumeReason(7)),
		entry(1, "3", RevertReason(7)),
		exit(1, "3", ConsumeReason(7)),
		exit(2, "0.5", ConsumeReason(7)),
		// outros agendamentos e movimentações manuais não contam
		exit(1, "9", ConsumeReason(77)),
		entry(2, "5", "Compra"),
	}

	b := BalanceFromLogs(7, logs)
	assert.True(t, b.HasConsumption())
	assert.True(t, b.HasReversal())

	out := b.Outstanding()
	if assert.Len(t, out, 2) {
		assert.Equal(t, uint(1), out[0].InventoryID)
		assert.True(t, dec("3").Equal(out[0].Quantity))
		assert.True(t, dec("1").Equal(out[1].Quantity))
	}
}

func TestBalance_EpsilonSkipsSettledItems(t *testing.T) {
	b := BalanceFromLogs(7, []models.InventoryLog{
		exit(1, "1.00005", ConsumeReason(7)),
		entry(1, "1", RevertReason(7)),
	})
	assert.Empty(t, b.Outstanding())
}

func TestBalance_RecomputedReversalIsNotSubtracted(t *testing.T) {
	b := BalanceFromLogs(7, []models.InventoryLog{
		entry(1, "3", RecomputedRevertReason(7)),
	})
	assert.False(t, b.HasConsumption())
	assert.True(t, b.HasReversal())

	b.Apply(exit(1, "3", ConsumeReason(7)))
	out := b.Outstanding()
	if assert.Len(t, out, 1) {
		assert.True(t, dec("3").Equal(out[0].Quantity))
	}
}

func TestReasonTokensDoNotCollide(t *testing.T) {
	assert.False(t, IsConsumeLog(exit(1, "1", ConsumeReason(12)), 1))
	assert.True(t, IsConsumeLog(exit(1, "1", ConsumeReason(12)), 12))
	assert.False(t, IsRevertLog(exit(1, "1", RevertReason(12)), 12))
}

func TestBalance_IgnoresRowsLinkedToAnotherAppointment(t *testing.T) {
	other := uint(8)
	foreign := exit(1, "5", ConsumeReason(7))
	foreign.AppointmentID = &other

	own := exit(1, "3", ConsumeReason(7))
	mine := uint(7)
	own.AppointmentID = &mine

	b := BalanceFromLogs(7, []models.InventoryLog{own, foreign})
	out := b.Outstanding()
	if assert.Len(t, out, 1) {
		assert.True(t, dec("3").Equal(out[0].Quantity))
	}
}

func TestIsReservedReason(t *testing.T) {
	for _, reason := range []string{
		ConsumeReason(3),
		RevertReason(3),
		"Perda: Agendamento #12 concluído",
		"agendamento # 5 revertido",
	} {
		assert.True(t, IsReservedReason(reason), reason)
	}
	for _, reason := range []string{
		"Movimentação manual",
		"Compra fornecedor",
		"Agendamento cancelado pela cliente",
		"Agendamento #12",
	} {
		assert.False(t, IsReservedReason(reason), reason)
	}
}
