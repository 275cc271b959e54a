package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"same", 600, 630, 600, 630, true},
		{"inside", 600, 660, 610, 620, true},
		{"partial", 600, 630, 615, 645, true},
		{"touching end", 600, 630, 630, 660, false},
		{"touching start", 630, 660, 600, 630, false},
		{"apart", 540, 570, 600, 630, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
		})
	}
}

func TestHasConflict(t *testing.T) {
	booked := []Booked{{Start: 600, Duration: 30}}

	assert.True(t, HasConflict(600, 30, booked))
	assert.False(t, HasConflict(630, 30, booked))
	assert.False(t, HasConflict(570, 30, booked))
	assert.True(t, HasConflict(570, 31, booked))
	assert.False(t, HasConflict(600, 30, nil))
}

func TestBookedOnDay(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, loc)

	aps := []models.Appointment{
		// 13:00 UTC = 10:00 local
		{ScheduledAt: time.Date(2026, 10, 19, 13, 0, 0, 0, time.UTC), Duration: "01:00", Status: "PENDING"},
		{ScheduledAt: time.Date(2026, 10, 19, 14, 0, 0, 0, time.UTC), Duration: "00:30", Status: "CANCELLED"},
		// 02:00 UTC do dia 20 ainda é dia 19 local
		{ScheduledAt: time.Date(2026, 10, 20, 2, 0, 0, 0, time.UTC), Duration: "xx", Status: "COMPLETED"},
		{ScheduledAt: time.Date(2026, 10, 20, 13, 0, 0, 0, time.UTC), Duration: "30", Status: "PENDING"},
	}

	got := BookedOnDay(aps, day, loc)
	assert.Equal(t, []Booked{
		{Start: 600, Duration: 60},
		{Start: 23 * 60, Duration: DefaultDurationMinutes},
	}, got)
}
