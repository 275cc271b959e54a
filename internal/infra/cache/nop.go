package cache

import (
	"context"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
)

// Nop é usado quando não há Redis configurado: toda leitura é miss.
type Nop struct{}

func (Nop) Get(context.Context, uint, string) (*domain.Grid, string, bool) { return nil, "", false }
func (Nop) Set(context.Context, uint, string, string, *domain.Grid)        {}
func (Nop) Invalidate(context.Context, uint, string)                       {}
func (Nop) InvalidateBusiness(context.Context, uint)                       {}

var _ domain.SlotCache = Nop{}
