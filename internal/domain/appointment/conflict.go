package appointment

import (
	"time"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

// Booked é um agendamento ativo reduzido a minutos do dia local.
type Booked struct {
	Start    int
	Duration int
}

func (b Booked) End() int { return b.Start + b.Duration }

// Overlaps: intervalos [aStart,aEnd) e [bStart,bEnd). Encostar não é conflito.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// HasConflict decide se o candidato colide com algum agendamento do dia.
func HasConflict(startMin, durationMin int, booked []Booked) bool {
	end := startMin + durationMin
	for _, b := range booked {
		if Overlaps(startMin, end, b.Start, b.End()) {
			return true
		}
	}
	return false
}

// BookedOnDay filtra os agendamentos não cancelados do mesmo dia local de day,
// comparando campos de calendário no fuso loc.
func BookedOnDay(aps []models.Appointment, day time.Time, loc *time.Location) []Booked {
	out := make([]Booked, 0, len(aps))
	for i := range aps {
		ap := &aps[i]
		if !IsActive(ap) {
			continue
		}
		at := ap.ScheduledAt.In(loc)
		if !SameLocalDay(at, day) {
			continue
		}
		out = append(out, Booked{
			Start:    MinuteOfDay(at),
			Duration: ParseDurationMinutes(ap.Duration),
		})
	}
	return out
}
