package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

func TestParseServiceIDs(t *testing.T) {
	ids, err := ParseServiceIDs(" 3, 1 ,,7")
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 1, 7}, ids)

	_, err = ParseServiceIDs("")
	assert.ErrorIs(t, err, ErrNoServices)

	_, err = ParseServiceIDs("1,a")
	assert.ErrorIs(t, err, ErrNoServices)

	_, err = ParseServiceIDs("0")
	assert.ErrorIs(t, err, ErrNoServices)
}

func TestAggregateServices(t *testing.T) {
	b := AggregateServices([]models.Service{
		{ID: 4, Name: "Corte", Price: 50, Duration: "00:30"},
		{ID: 2, Name: "Barba", Price: 35.5, Duration: "20"},
		{ID: 9, Name: "Sobrancelha", Price: 15, Duration: "???"},
	})

	assert.Equal(t, []uint{4, 2, 9}, b.ServiceIDs)
	assert.Equal(t, "Corte, Barba, Sobrancelha", b.Name)
	assert.InDelta(t, 100.5, b.TotalPrice, 0.0001)
	assert.Equal(t, 30+20+DefaultDurationMinutes, b.TotalMinutes)
	require.Len(t, b.Lines, 3)
	assert.Equal(t, 2, b.Lines[2].Position)
	assert.Equal(t, 20, b.Lines[1].DurationMin)
}

func TestNotesWithServiceIDs(t *testing.T) {
	assert.Equal(t, "obs", NotesWithServiceIDs("obs", []uint{1}))
	assert.Equal(t, "IDs: 1,2", NotesWithServiceIDs("", []uint{1, 2}))
	assert.Equal(t, "obs\nIDs: 1,2", NotesWithServiceIDs("obs", []uint{1, 2}))
}

func TestBundleServiceIDs(t *testing.T) {
	joined := &models.Appointment{
		ServiceID: 1,
		Notes:     "IDs: 9,9",
		Services: []models.AppointmentService{
			{ServiceID: 3, Position: 1},
			{ServiceID: 1, Position: 0},
		},
	}
	assert.Equal(t, []uint{1, 3}, BundleServiceIDs(joined))

	legacy := &models.Appointment{ServiceID: 5, Notes: "cliente pediu silêncio\nIDs: 5, 6,7\noutra linha"}
	assert.Equal(t, []uint{5, 6, 7}, BundleServiceIDs(legacy))

	single := &models.Appointment{ServiceID: 5, Notes: "sem marcador"}
	assert.Equal(t, []uint{5}, BundleServiceIDs(single))

	assert.Nil(t, BundleServiceIDs(&models.Appointment{}))
}
