package appointment

import "github.com/BruksfildServices01/studio-scheduler/internal/models"

// FitsWindow valida se [start, start+duration) cabe inteiro em um único expediente
// (manhã ou tarde) do dia.
func FitsWindow(day *models.WeekdayHours, startMin, durationMin int) bool {
	end := startMin + durationMin
	for _, w := range Windows(day) {
		if startMin >= w.Start && end <= w.End {
			return true
		}
	}
	return false
}
