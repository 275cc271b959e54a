package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/studio-scheduler/internal/audit"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

type AuditStore struct {
	mu      sync.Mutex
	seq     uint
	entries []models.AuditLog
}

var _ audit.Store = (*AuditStore)(nil)

func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

func (s *AuditStore) Save(_ context.Context, entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	entry.ID = s.seq
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *AuditStore) List(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	f.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.AuditLog
	for _, e := range s.entries {
		if e.BusinessID != f.BusinessID {
			continue
		}
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		if f.Entity != "" && e.Entity != f.Entity {
			continue
		}
		if f.From != nil && e.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !e.CreatedAt.Before(*f.To) {
			continue
		}
		matched = append(matched, e)
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	start := f.Offset()
	if start >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// Recorder grava eventos de forma síncrona, útil quando a ordem importa nos testes.
type Recorder struct {
	Store *AuditStore
}

func (r Recorder) Dispatch(ev audit.Event) {
	_ = r.Store.Save(context.Background(), audit.Entry(ev))
}
