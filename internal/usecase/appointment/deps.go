package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/studio-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/metrics"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
	"github.com/BruksfildServices01/studio-scheduler/internal/notify"
	inventoryuc "github.com/BruksfildServices01/studio-scheduler/internal/usecase/inventory"
)

// Deps reúne os colaboradores compartilhados pelos casos de uso de agenda.
type Deps struct {
	Repo     domain.Repository
	Tx       domain.TxRunner
	Ledger   *inventoryuc.Ledger
	Cache    domain.SlotCache
	Notifier notify.Notifier
	Audit    audit.Recorder
	Metrics  *metrics.Collector
	Log      zerolog.Logger

	// Location é o fuso em que a agenda é lida (hora de parede).
	Location *time.Location
	Now      func() time.Time
}

func (d Deps) loc() *time.Location {
	if d.Location == nil {
		return time.Local
	}
	return d.Location
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// authorizeOwner garante que userID é o dono do negócio e devolve o dono.
func authorizeOwner(ctx context.Context, repo domain.Repository, businessID, userID uint) (*models.User, error) {
	owner, err := repo.GetBusinessOwner(ctx, businessID)
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

func (d Deps) invalidateDay(ctx context.Context, businessID uint, at time.Time) {
	if d.Cache == nil {
		return
	}
	d.Cache.Invalidate(ctx, businessID, at.In(d.loc()).Format(domain.DateLayout))
}

func (d Deps) send(msg notify.Message) {
	if d.Notifier == nil {
		return
	}
	d.Notifier.Notify(msg)
}

func (d Deps) record(ev audit.Event) {
	if d.Audit == nil {
		return
	}
	d.Audit.Dispatch(ev)
}
