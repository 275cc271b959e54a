package inventory

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/inventory"
	"github.com/BruksfildServices01/studio-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

func TestLedger_ConsumeSkipsMissingAndForeignItems(t *testing.T) {
	store := memory.New()
	_, business := store.SeedBusiness(models.User{Email: "a@test"}, models.Business{Slug: "a"})

	mine := store.SeedItem(models.InventoryItem{BusinessID: business.ID, Name: "Gel", CurrentQuantity: d("5")})
	foreign := store.SeedItem(models.InventoryItem{BusinessID: business.ID + 1, Name: "Outro", CurrentQuantity: d("5")})

	svc := store.SeedService(models.Service{
		BusinessID: business.ID,
		Resources: []models.ServiceResource{
			{InventoryID: mine.ID, Quantity: d("1")},
			{InventoryID: foreign.ID, Quantity: d("1")},
			{InventoryID: 4242, Quantity: d("1")},
			{InventoryID: mine.ID, Quantity: d("0")},
		},
	})

	ap := store.SeedAppointment(models.Appointment{BusinessID: business.ID, ServiceID: svc.ID})
	ledger := NewLedger(nil, zerolog.Nop())

	err := store.RunLedger(context.Background(), func(repo domain.LedgerRepository) error {
		alerts, err := ledger.Consume(context.Background(), repo, &ap, []uint{svc.ID})
		assert.Empty(t, alerts)
		return err
	})
	require.NoError(t, err)

	got, _ := store.Item(mine.ID)
	assert.True(t, d("4").Equal(got.CurrentQuantity))
	other, _ := store.Item(foreign.ID)
	assert.True(t, d("5").Equal(other.CurrentQuantity))
	assert.Len(t, store.Logs(), 1)
}

func TestLedger_ReverseTwiceRestoresOnce(t *testing.T) {
	store := memory.New()
	_, business := store.SeedBusiness(models.User{Email: "a@test"}, models.Business{Slug: "a"})
	item := store.SeedItem(models.InventoryItem{BusinessID: business.ID, Name: "Gel", CurrentQuantity: d("5")})
	svc := store.SeedService(models.Service{
		BusinessID: business.ID,
		Resources:  []models.ServiceResource{{InventoryID: item.ID, Quantity: d("1.5")}},
	})
	ap := store.SeedAppointment(models.Appointment{BusinessID: business.ID, ServiceID: svc.ID})
	ledger := NewLedger(nil, zerolog.Nop())

	run := func(fn func(repo domain.LedgerRepository) error) {
		require.NoError(t, store.RunLedger(context.Background(), fn))
	}

	run(func(repo domain.LedgerRepository) error {
		_, err := ledger.Consume(context.Background(), repo, &ap, []uint{svc.ID})
		return err
	})
	for i := 0; i < 2; i++ {
		run(func(repo domain.LedgerRepository) error {
			return ledger.Reverse(context.Background(), repo, &ap, []uint{svc.ID})
		})
	}

	got, _ := store.Item(item.ID)
	assert.True(t, d("5").Equal(got.CurrentQuantity))
	assert.Len(t, store.Logs(), 2)
}
