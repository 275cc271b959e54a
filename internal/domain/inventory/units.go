package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

func hasConversion(item *models.InventoryItem) bool {
	return item.ConversionFactor.Valid && item.ConversionFactor.Decimal.IsPositive()
}

// ToBaseUnit converte a quantidade configurada no recurso para a unidade base do item.
// Quando o recurso usa a unidade secundária (ex.: "ml" de uma caixa), divide pelo fator.
func ToBaseUnit(res models.ServiceResource, item *models.InventoryItem) decimal.Decimal {
	qty := res.Quantity
	if !qty.IsPositive() {
		return decimal.Zero
	}
	if !hasConversion(item) {
		return qty
	}

	secondary := res.UseSecondaryUnit ||
		(item.SecondaryUnit != "" && strings.EqualFold(strings.TrimSpace(res.Unit), item.SecondaryUnit))
	if secondary {
		return qty.Div(item.ConversionFactor.Decimal)
	}
	return qty
}

// DisplayQuantity devolve o saldo na unidade de exibição: a secundária quando há fator.
func DisplayQuantity(item *models.InventoryItem) decimal.Decimal {
	if hasConversion(item) {
		return item.CurrentQuantity.Mul(item.ConversionFactor.Decimal)
	}
	return item.CurrentQuantity
}

// IsLowStock compara o saldo com o mínimo. O mínimo é sempre expresso na unidade
// de exibição.
func IsLowStock(item *models.InventoryItem) bool {
	return DisplayQuantity(item).LessThanOrEqual(item.MinQuantity)
}

// DisplayUnit é a unidade em que DisplayQuantity está expresso.
func DisplayUnit(item *models.InventoryItem) string {
	if hasConversion(item) && item.SecondaryUnit != "" {
		return item.SecondaryUnit
	}
	return item.Unit
}
