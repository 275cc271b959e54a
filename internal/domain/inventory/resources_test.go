package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

func ids(rs []models.ServiceResource) []uint {
	out := make([]uint, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestSelectForConsumption(t *testing.T) {
	resources := []models.ServiceResource{
		{ID: 1, ServiceID: 10, InventoryID: 100, IsShared: true, Quantity: dec("6")},
		{ID: 2, ServiceID: 10, InventoryID: 200, Quantity: dec("1")},
		{ID: 3, ServiceID: 20, InventoryID: 100, IsShared: true, Quantity: dec("4")},
		{ID: 4, ServiceID: 20, InventoryID: 200, Quantity: dec("1")},
		{ID: 5, ServiceID: 30, InventoryID: 300, Quantity: dec("1")},
	}

	// o pacote começa pelo serviço 20: o compartilhado dele vence
	got := SelectForConsumption([]uint{20, 10}, resources)
	assert.Equal(t, []uint{3, 4, 2}, ids(got))

	got = SelectForConsumption([]uint{10, 20}, resources)
	assert.Equal(t, []uint{1, 2, 4}, ids(got))

	assert.Empty(t, SelectForConsumption([]uint{99}, resources))
}
