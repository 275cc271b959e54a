package appointment

import (
	"time"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

type SlotReason string

const (
	ReasonOccupied SlotReason = "OCCUPIED"
	ReasonBlocked  SlotReason = "BLOCKED"
)

type Slot struct {
	Time      string      `json:"time"`
	Available bool        `json:"available"`
	Reason    *SlotReason `json:"reason"`
}

type Grid struct {
	Date     string `json:"date"`
	Interval string `json:"interval"`
	Closed   bool   `json:"closed"`
	Slots    []Slot `json:"slots"`
}

// GenerateSlots monta a grade do dia. date deve estar no fuso da agenda; o resultado
// depende apenas dos argumentos.
//
// Um horário com agendamento e bloqueio ao mesmo tempo sai como BLOCKED, porque a
// checagem de bloqueio roda por último.
func GenerateSlots(oh *models.OperatingHours, date time.Time, booked []Booked) Grid {
	interval := SlotIntervalMinutes(oh)
	grid := Grid{
		Date:     date.Format(DateLayout),
		Interval: FormatHM(interval),
		Slots:    []Slot{},
	}

	day, ok := OpenDay(oh, date.Weekday())
	if !ok {
		grid.Closed = true
		return grid
	}

	blocks := BlocksFor(oh, grid.Date)
	step := time.Duration(interval) * time.Minute
	midnight, _ := DayBounds(date)

	for _, w := range Windows(day) {
		windowEnd := midnight.Add(time.Duration(w.End) * time.Minute)

		for cur := midnight.Add(time.Duration(w.Start) * time.Minute); !cur.Add(step).After(windowEnd); cur = cur.Add(step) {
			label := cur.Format("15:04")
			minute := MinuteOfDay(cur)

			slot := Slot{Time: label, Available: true}

			for _, b := range booked {
				if minute >= b.Start && minute < b.End() {
					slot.Available = false
					r := ReasonOccupied
					slot.Reason = &r
					break
				}
			}

			for _, b := range blocks {
				from, to := BlockRange(b)
				if label >= from && label < to {
					slot.Available = false
					r := ReasonBlocked
					slot.Reason = &r
					break
				}
			}

			grid.Slots = append(grid.Slots, slot)
		}
	}

	return grid
}
