package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationMinutes(t *testing.T) {
	cases := map[string]int{
		"00:30": 30,
		"01:15": 75,
		"45":    45,
		" 90 ":  90,
		"":      DefaultDurationMinutes,
		"abc":   DefaultDurationMinutes,
		"1:99":  DefaultDurationMinutes,
		"-5":    DefaultDurationMinutes,
		"1:2:3": DefaultDurationMinutes,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseDurationMinutes(in), in)
	}
}

func TestParseClock(t *testing.T) {
	m, ok := ParseClock("09:30")
	assert.True(t, ok)
	assert.Equal(t, 570, m)

	_, ok = ParseClock("24:00")
	assert.False(t, ok)
	_, ok = ParseClock("9h")
	assert.False(t, ok)
}

func TestFormatHMAndDayBounds(t *testing.T) {
	assert.Equal(t, "01:30", FormatHM(90))
	assert.Equal(t, "00:05", FormatHM(5))

	at := time.Date(2026, 10, 19, 15, 4, 0, 0, time.UTC)
	start, end := DayBounds(at)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, 904, MinuteOfDay(at))
}
