package inventory

import (
	"sort"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

// SelectForConsumption ordena os recursos na ordem do pacote de serviços e aplica a
// regra de compartilhamento: um recurso IsShared só conta na primeira vez que o
// item aparece; recursos comuns são todos mantidos.
func SelectForConsumption(serviceIDs []uint, resources []models.ServiceResource) []models.ServiceResource {
	position := make(map[uint]int, len(serviceIDs))
	for i, id := range serviceIDs {
		if _, ok := position[id]; !ok {
			position[id] = i
		}
	}

	ordered := make([]models.ServiceResource, 0, len(resources))
	for _, r := range resources {
		if _, ok := position[r.ServiceID]; ok {
			ordered = append(ordered, r)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := position[ordered[i].ServiceID], position[ordered[j].ServiceID]
		if pi != pj {
			return pi < pj
		}
		return ordered[i].ID < ordered[j].ID
	})

	seen := make(map[uint]bool)
	out := make([]models.ServiceResource, 0, len(ordered))
	for _, r := range ordered {
		if r.IsShared {
			if seen[r.InventoryID] {
				continue
			}
			seen[r.InventoryID] = true
		}
		out = append(out, r)
	}
	return out
}
