package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

func TestWeekdayFromName(t *testing.T) {
	cases := map[string]time.Weekday{
		"Sábado":       time.Saturday,
		"terça-feira":  time.Tuesday,
		"MONDAY":       time.Monday,
		" Domingo ":    time.Sunday,
		"Quarta-Feira": time.Wednesday,
	}
	for name, want := range cases {
		got, ok := WeekdayFromName(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := WeekdayFromName("feriado")
	assert.False(t, ok)
}

func TestDayConfigPrefersName(t *testing.T) {
	oh := &models.OperatingHours{Weekly: []models.WeekdayHours{
		{Day: 1, Name: "Sexta"},
		{Day: 1, Open: true},
	}}

	d, ok := DayConfig(oh, time.Friday)
	assert.True(t, ok)
	assert.Equal(t, "Sexta", d.Name)

	d, ok = DayConfig(oh, time.Monday)
	assert.True(t, ok)
	assert.True(t, d.Open)

	_, ok = OpenDay(oh, time.Friday)
	assert.False(t, ok)
}

func TestFitsWindow(t *testing.T) {
	day := &models.WeekdayHours{
		Open:           true,
		MorningStart:   "09:00",
		MorningEnd:     "12:00",
		AfternoonStart: "13:00",
		AfternoonEnd:   "18:00",
	}

	assert.True(t, FitsWindow(day, 9*60, 180))
	assert.False(t, FitsWindow(day, 11*60, 90))
	assert.True(t, FitsWindow(day, 13*60, 60))
	assert.False(t, FitsWindow(day, 17*60+30, 60))
	assert.False(t, FitsWindow(day, 8*60+59, 30))
}

func TestBlockRangeDefaults(t *testing.T) {
	from, to := BlockRange(models.AgendaBlock{Type: BlockDay})
	assert.Equal(t, "00:00", from)
	assert.Equal(t, "23:59", to)

	from, to = BlockRange(models.AgendaBlock{StartTime: "10:00"})
	assert.Equal(t, "10:00", from)
	assert.Equal(t, "23:59", to)
}

func fullWeek() []models.WeekdayHours {
	weekly := make([]models.WeekdayHours, 7)
	for i := range weekly {
		weekly[i] = models.WeekdayHours{Day: i}
	}
	return weekly
}

func TestValidateOperatingHours(t *testing.T) {
	valid := &models.OperatingHours{SlotInterval: "00:30", Weekly: fullWeek()}
	valid.Weekly[1] = models.WeekdayHours{Day: 1, Open: true, MorningStart: "09:00", MorningEnd: "12:00"}
	assert.NoError(t, ValidateOperatingHours(valid))

	cases := map[string]func(oh *models.OperatingHours){
		"six days":         func(oh *models.OperatingHours) { oh.Weekly = oh.Weekly[:6] },
		"duplicated day":   func(oh *models.OperatingHours) { oh.Weekly[2].Day = 3 },
		"day out of range": func(oh *models.OperatingHours) { oh.Weekly[0].Day = 9 },
		"bad name":         func(oh *models.OperatingHours) { oh.Weekly[0].Name = "feriado" },
		"inverted window":  func(oh *models.OperatingHours) { oh.Weekly[1].MorningEnd = "08:00" },
		"half window":      func(oh *models.OperatingHours) { oh.Weekly[3].AfternoonStart = "13:00" },
		"open no windows":  func(oh *models.OperatingHours) { oh.Weekly[4].Open = true },
		"bad interval":     func(oh *models.OperatingHours) { oh.SlotInterval = "x" },
		"bad block type": func(oh *models.OperatingHours) {
			oh.Blocks = []models.AgendaBlock{{Type: "BLOCK_WEEK", Date: "2026-10-19"}}
		},
		"bad block date": func(oh *models.OperatingHours) {
			oh.Blocks = []models.AgendaBlock{{Type: BlockDay, Date: "19/10/2026"}}
		},
		"period backwards": func(oh *models.OperatingHours) {
			oh.Blocks = []models.AgendaBlock{{Type: BlockPeriod, Date: "2026-10-19", EndDate: "2026-10-01"}}
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			oh := &models.OperatingHours{SlotInterval: "00:30", Weekly: fullWeek()}
			oh.Weekly[1] = models.WeekdayHours{Day: 1, Open: true, MorningStart: "09:00", MorningEnd: "12:00"}
			mutate(oh)
			assert.ErrorIs(t, ValidateOperatingHours(oh), ErrInvalidCalendar)
		})
	}

	assert.ErrorIs(t, ValidateOperatingHours(nil), ErrInvalidCalendar)
}
