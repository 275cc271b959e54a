package inventory

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

// Epsilon abaixo do qual um saldo pendente é considerado zerado.
var Epsilon = decimal.New(1, -4)

func ConsumeReason(appointmentID uint) string {
	return fmt.Sprintf("Agendamento #%d concluído", appointmentID)
}

func RevertToken(appointmentID uint) string {
	return fmt.Sprintf("Agendamento #%d revertido", appointmentID)
}

func RevertReason(appointmentID uint) string {
	return RevertToken(appointmentID) + " (Saldo Pendente)"
}

const recomputedSuffix = " (Recalculado)"

// RecomputedRevertReason marca devoluções feitas sem saídas no razão, calculadas a
// partir da configuração atual dos serviços.
func RecomputedRevertReason(appointmentID uint) string {
	return RevertToken(appointmentID) + recomputedSuffix
}

var reservedReason = regexp.MustCompile(`(?i)agendamento\s*#\s*\d+\s+(conclu|revert)`)

// IsReservedReason reconhece motivos no formato das baixas automáticas. Movimentações
// manuais não podem usá-los: o razão as confundiria com consumo de agendamento.
func IsReservedReason(reason string) bool {
	return reservedReason.MatchString(reason)
}

// belongsTo aceita a linha vinculada ao agendamento ou, sem vínculo, a linha legada.
func belongsTo(l models.InventoryLog, appointmentID uint) bool {
	return l.AppointmentID == nil || *l.AppointmentID == appointmentID
}

func IsConsumeLog(l models.InventoryLog, appointmentID uint) bool {
	return l.Type == models.InventoryLogExit &&
		belongsTo(l, appointmentID) &&
		strings.Contains(l.Reason, ConsumeReason(appointmentID))
}

func IsRevertLog(l models.InventoryLog, appointmentID uint) bool {
	return l.Type == models.InventoryLogEntry &&
		belongsTo(l, appointmentID) &&
		strings.Contains(l.Reason, RevertToken(appointmentID))
}

type ItemBalance struct {
	InventoryID uint
	Quantity    decimal.Decimal
}

// Balance acumula, por item, o saldo ainda não devolvido de um agendamento:
// soma das saídas de conclusão menos as entradas de reversão.
type Balance struct {
	appointmentID uint
	order         []uint
	byItem        map[uint]decimal.Decimal
	consumed      bool
	reverted      bool
}

func NewBalance(appointmentID uint) *Balance {
	return &Balance{
		appointmentID: appointmentID,
		byItem:        make(map[uint]decimal.Decimal),
	}
}

// Apply registra uma linha do razão; linhas de outros agendamentos são ignoradas.
func (b *Balance) Apply(l models.InventoryLog) {
	var signed decimal.Decimal
	switch {
	case IsConsumeLog(l, b.appointmentID):
		signed = l.Quantity
		b.consumed = true
	case IsRevertLog(l, b.appointmentID):
		b.reverted = true
		// devolução recalculada não tem saída correspondente no razão
		if strings.HasSuffix(l.Reason, recomputedSuffix) {
			return
		}
		signed = l.Quantity.Neg()
	default:
		return
	}

	if _, ok := b.byItem[l.InventoryID]; !ok {
		b.order = append(b.order, l.InventoryID)
	}
	b.byItem[l.InventoryID] = b.byItem[l.InventoryID].Add(signed)
}

// HasConsumption indica se existe ao menos uma saída de conclusão registrada.
func (b *Balance) HasConsumption() bool { return b.consumed }

// HasReversal indica se já houve alguma entrada de reversão.
func (b *Balance) HasReversal() bool { return b.reverted }

// Outstanding devolve os itens com saldo pendente acima de Epsilon, na ordem em que
// apareceram no razão.
func (b *Balance) Outstanding() []ItemBalance {
	out := make([]ItemBalance, 0, len(b.order))
	for _, id := range b.order {
		qty := b.byItem[id]
		if qty.LessThanOrEqual(Epsilon) {
			continue
		}
		out = append(out, ItemBalance{InventoryID: id, Quantity: qty})
	}
	return out
}

// BalanceFromLogs reconstrói o saldo a partir do histórico completo.
func BalanceFromLogs(appointmentID uint, logs []models.InventoryLog) *Balance {
	b := NewBalance(appointmentID)
	for _, l := range logs {
		b.Apply(l)
	}
	return b
}
