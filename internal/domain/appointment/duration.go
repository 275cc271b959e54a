package appointment

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DefaultDurationMinutes = 30

// ParseDurationMinutes lê "HH:mm" ou um número inteiro de minutos.
// Valores ilegíveis valem DefaultDurationMinutes.
func ParseDurationMinutes(s string) int {
	n, ok := parseMinutes(s)
	if !ok {
		return DefaultDurationMinutes
	}
	return n
}

func parseMinutes(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if strings.Contains(s, ":") {
		h, m, ok := splitHM(s)
		if !ok {
			return 0, false
		}
		return h*60 + m, true
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ParseClock lê um horário "HH:mm" e devolve o minuto do dia.
func ParseClock(s string) (int, bool) {
	h, m, ok := splitHM(strings.TrimSpace(s))
	if !ok || h > 23 {
		return 0, false
	}
	return h*60 + m, true
}

func splitHM(s string) (int, int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// FormatHM formata minutos como "HH:mm".
func FormatHM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinuteOfDay usa os campos de relógio de t no seu próprio fuso.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// DayBounds devolve [00:00, 00:00 do dia seguinte) do dia local de t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

func SameLocalDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}
