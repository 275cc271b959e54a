package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

type fakeStore struct {
	mu      sync.Mutex
	entries []models.AuditLog
	err     error
}

func (s *fakeStore) Save(_ context.Context, entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *fakeStore) List(context.Context, Filter) ([]models.AuditLog, int64, error) {
	return s.entries, int64(len(s.entries)), nil
}

func TestDispatcher_PersistsEvents(t *testing.T) {
	store := &fakeStore{}
	d := NewDispatcher(store, 4, zerolog.Nop())

	id := uint(42)
	d.Dispatch(Event{
		BusinessID: 1,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &id,
		Metadata:   map[string]any{"price": 50},
	})
	d.Close()

	require.Len(t, store.entries, 1)
	got := store.entries[0]
	assert.Equal(t, uint(1), got.BusinessID)
	assert.Equal(t, "appointment_created", got.Action)
	assert.JSONEq(t, `{"price":50}`, got.Metadata)
}

func TestDispatcher_StoreErrorDoesNotStopWorker(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	d := NewDispatcher(store, 4, zerolog.Nop())

	d.Dispatch(Event{BusinessID: 1, Action: "a"})
	d.Dispatch(Event{BusinessID: 1, Action: "b"})
	assert.NotPanics(t, d.Close)
}

func TestFilter_Normalize(t *testing.T) {
	f := Filter{Page: 0, Limit: 1000}
	f.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 50, f.Limit)

	f = Filter{Page: 3, Limit: 20}
	f.Normalize()
	assert.Equal(t, 40, f.Offset())
}
