package appointment

import (
	"time"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyStatus grava o novo status e mantém os carimbos de conclusão/cancelamento
// coerentes com ele.
func ApplyStatus(ap *models.Appointment, next Status, now time.Time) {
	ap.Status = string(next)

	switch next {
	case StatusCompleted:
		ap.CompletedAt = &now
		ap.CancelledAt = nil
	case StatusCancelled:
		ap.CancelledAt = &now
		ap.CompletedAt = nil
	default:
		ap.CompletedAt = nil
		ap.CancelledAt = nil
	}
}

func IsActive(ap *models.Appointment) bool {
	return Status(ap.Status) != StatusCancelled
}
