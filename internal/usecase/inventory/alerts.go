package inventory

import (
	"fmt"

	"github.com/BruksfildServices01/studio-scheduler/internal/notify"
)

// LowStockMessage monta a notificação de estoque baixo para o dono do negócio.
func LowStockMessage(ownerID uint, a LowStockAlert) notify.Message {
	return notify.Message{
		UserID: ownerID,
		Title:  "Estoque baixo",
		Body: fmt.Sprintf(
			"%s está com %s %s (mínimo %s).",
			a.Name,
			a.Quantity.StringFixed(2),
			a.Unit,
			a.MinQuantity.StringFixed(2),
		),
	}
}
