package appointment

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

// Bundle é a agregação dos serviços escolhidos numa reserva.
type Bundle struct {
	ServiceIDs   []uint
	Name         string
	TotalPrice   float64
	TotalMinutes int
	Lines        []models.AppointmentService
}

// ParseServiceIDs lê a lista "1,2,3". Entradas vazias ou inválidas invalidam a lista.
func ParseServiceIDs(raw string) ([]uint, error) {
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil || n == 0 {
			return nil, ErrNoServices
		}
		ids = append(ids, uint(n))
	}
	if len(ids) == 0 {
		return nil, ErrNoServices
	}
	return ids, nil
}

// AggregateServices soma preço e duração e junta os nomes, na ordem recebida.
func AggregateServices(services []models.Service) Bundle {
	b := Bundle{
		ServiceIDs: make([]uint, 0, len(services)),
		Lines:      make([]models.AppointmentService, 0, len(services)),
	}
	names := make([]string, 0, len(services))

	for i, s := range services {
		minutes := ParseDurationMinutes(s.Duration)

		b.ServiceIDs = append(b.ServiceIDs, s.ID)
		b.TotalPrice += s.Price
		b.TotalMinutes += minutes
		names = append(names, s.Name)

		b.Lines = append(b.Lines, models.AppointmentService{
			ServiceID:   s.ID,
			Position:    i,
			Name:        s.Name,
			Price:       s.Price,
			DurationMin: minutes,
		})
	}

	b.Name = strings.Join(names, ", ")
	return b
}

var idsMarker = regexp.MustCompile(`IDs:[ \t]*([0-9, ]+)`)

// NotesWithServiceIDs acrescenta a linha "IDs: a,b,c" às observações quando o
// pacote tem mais de um serviço, para leitores antigos da tabela.
func NotesWithServiceIDs(notes string, ids []uint) string {
	if len(ids) < 2 {
		return notes
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	line := "IDs: " + strings.Join(parts, ",")
	if strings.TrimSpace(notes) == "" {
		return line
	}
	return notes + "\n" + line
}

// BundleServiceIDs recupera o pacote completo: linhas de appointment_services,
// senão o marcador "IDs:" das observações (agendamentos antigos), senão o serviço
// principal.
func BundleServiceIDs(ap *models.Appointment) []uint {
	if len(ap.Services) > 0 {
		lines := make([]models.AppointmentService, len(ap.Services))
		copy(lines, ap.Services)
		sort.SliceStable(lines, func(i, j int) bool { return lines[i].Position < lines[j].Position })

		ids := make([]uint, len(lines))
		for i, l := range lines {
			ids[i] = l.ServiceID
		}
		return ids
	}

	if m := idsMarker.FindStringSubmatch(ap.Notes); m != nil {
		var ids []uint
		for _, part := range strings.Split(m[1], ",") {
			n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
			if err == nil && n > 0 {
				ids = append(ids, uint(n))
			}
		}
		if len(ids) > 0 {
			return ids
		}
	}

	if ap.ServiceID == 0 {
		return nil
	}
	return []uint{ap.ServiceID}
}
