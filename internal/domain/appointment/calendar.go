package appointment

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

const (
	BlockHour   = "BLOCK_HOUR"
	BlockDay    = "BLOCK_DAY"
	BlockPeriod = "BLOCK_PERIOD"

	DateLayout = "2006-01-02"
)

// Window é um expediente (manhã ou tarde) em minutos do dia, [Start, End).
type Window struct {
	Start int
	End   int
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "domingo": time.Sunday,
	"monday": time.Monday, "segunda": time.Monday,
	"tuesday": time.Tuesday, "terca": time.Tuesday,
	"wednesday": time.Wednesday, "quarta": time.Wednesday,
	"thursday": time.Thursday, "quinta": time.Thursday,
	"friday": time.Friday, "sexta": time.Friday,
	"saturday": time.Saturday, "sabado": time.Saturday,
}

func normalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(strings.TrimSpace(out))
	return strings.TrimSuffix(out, "-feira")
}

// WeekdayFromName reconhece nomes em inglês e português ("Sábado", "terça-feira").
func WeekdayFromName(name string) (time.Weekday, bool) {
	wd, ok := weekdayNames[normalizeName(name)]
	return wd, ok
}

// DayConfig resolve a configuração do dia da semana, pelo nome quando presente
// ou pelo índice (0=domingo).
func DayConfig(oh *models.OperatingHours, weekday time.Weekday) (*models.WeekdayHours, bool) {
	if oh == nil {
		return nil, false
	}
	for i := range oh.Weekly {
		d := &oh.Weekly[i]
		if d.Name != "" {
			if wd, ok := WeekdayFromName(d.Name); ok && wd == weekday {
				return d, true
			}
			continue
		}
		if d.Day == int(weekday) {
			return d, true
		}
	}
	return nil, false
}

// OpenDay devolve a configuração do dia somente se o estabelecimento abre.
func OpenDay(oh *models.OperatingHours, weekday time.Weekday) (*models.WeekdayHours, bool) {
	d, ok := DayConfig(oh, weekday)
	if !ok || !d.Open {
		return nil, false
	}
	return d, true
}

// Windows devolve os expedientes válidos do dia (manhã, depois tarde).
func Windows(d *models.WeekdayHours) []Window {
	var out []Window
	if w, ok := window(d.MorningStart, d.MorningEnd); ok {
		out = append(out, w)
	}
	if w, ok := window(d.AfternoonStart, d.AfternoonEnd); ok {
		out = append(out, w)
	}
	return out
}

func window(start, end string) (Window, bool) {
	if start == "" || end == "" {
		return Window{}, false
	}
	s, ok1 := ParseClock(start)
	e, ok2 := ParseClock(end)
	if !ok1 || !ok2 || s >= e {
		return Window{}, false
	}
	return Window{Start: s, End: e}, true
}

// SlotIntervalMinutes: granularidade da grade; 30 quando ausente ou inválida.
func SlotIntervalMinutes(oh *models.OperatingHours) int {
	if oh == nil {
		return DefaultDurationMinutes
	}
	n := ParseDurationMinutes(oh.SlotInterval)
	if n <= 0 {
		return DefaultDurationMinutes
	}
	return n
}

// BlocksFor devolve os bloqueios que valem para a data (YYYY-MM-DD).
func BlocksFor(oh *models.OperatingHours, date string) []models.AgendaBlock {
	if oh == nil {
		return nil
	}
	var out []models.AgendaBlock
	for _, b := range oh.Blocks {
		if blockCovers(b, date) {
			out = append(out, b)
		}
	}
	return out
}

func blockCovers(b models.AgendaBlock, date string) bool {
	if b.Type == BlockPeriod && b.EndDate != "" {
		return b.Date <= date && date <= b.EndDate
	}
	return b.Date == date
}

// BlockRange devolve a faixa [início, fim) do bloqueio; 00:00–23:59 quando omitida.
func BlockRange(b models.AgendaBlock) (string, string) {
	start, end := "00:00", "23:59"
	if b.StartTime != "" {
		start = b.StartTime
	}
	if b.EndTime != "" {
		end = b.EndTime
	}
	return start, end
}

// ValidateOperatingHours checa a configuração antes de salvar.
func ValidateOperatingHours(oh *models.OperatingHours) error {
	if oh == nil || len(oh.Weekly) != 7 {
		return ErrInvalidCalendar
	}
	if oh.SlotInterval != "" {
		if n, ok := parseMinutes(oh.SlotInterval); !ok || n <= 0 {
			return ErrInvalidCalendar
		}
	}

	seen := make(map[time.Weekday]bool, 7)
	for i := range oh.Weekly {
		d := &oh.Weekly[i]
		wd := time.Weekday(d.Day)
		if d.Name != "" {
			var ok bool
			if wd, ok = WeekdayFromName(d.Name); !ok {
				return ErrInvalidCalendar
			}
		} else if d.Day < 0 || d.Day > 6 {
			return ErrInvalidCalendar
		}
		if seen[wd] {
			return ErrInvalidCalendar
		}
		seen[wd] = true

		for _, pair := range [][2]string{{d.MorningStart, d.MorningEnd}, {d.AfternoonStart, d.AfternoonEnd}} {
			if pair[0] == "" && pair[1] == "" {
				continue
			}
			if _, ok := window(pair[0], pair[1]); !ok {
				return ErrInvalidCalendar
			}
		}
		if d.Open && len(Windows(d)) == 0 {
			return ErrInvalidCalendar
		}
	}

	for _, b := range oh.Blocks {
		switch b.Type {
		case BlockHour, BlockDay, BlockPeriod:
		default:
			return ErrInvalidCalendar
		}
		if _, err := time.Parse(DateLayout, b.Date); err != nil {
			return ErrInvalidCalendar
		}
		if b.Type == BlockPeriod && b.EndDate != "" {
			if _, err := time.Parse(DateLayout, b.EndDate); err != nil || b.EndDate < b.Date {
				return ErrInvalidCalendar
			}
		}
	}
	return nil
}
