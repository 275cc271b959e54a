package timezone

import "time"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolve o fuso da agenda. Sem configuração válida vale o relógio local
// do processo: os horários de expediente são comparados como hora de parede.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

// ParseDate lê YYYY-MM-DD no fuso da agenda.
func ParseDate(loc *time.Location, s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, loc)
}

// ParseDateTime aceita RFC3339 (instante absoluto) ou "YYYY-MM-DD HH:mm" no fuso da agenda.
func ParseDateTime(loc *time.Location, s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04", s, loc)
}
