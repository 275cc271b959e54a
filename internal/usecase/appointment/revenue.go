package appointment

import "context"

type RevenueInput struct {
	BusinessID uint
	UserID     uint
	StartDate  string
	EndDate    string
}

type Revenue struct {
	deps Deps
}

func NewRevenue(deps Deps) *Revenue {
	return &Revenue{deps: deps}
}

// Execute soma o preço dos agendamentos concluídos no período.
func (uc *Revenue) Execute(ctx context.Context, in RevenueInput) (float64, error) {
	if _, err := authorizeOwner(ctx, uc.deps.Repo, in.BusinessID, in.UserID); err != nil {
		return 0, err
	}

	start, end, err := periodBounds(uc.deps.loc(), in.StartDate, in.EndDate)
	if err != nil {
		return 0, err
	}

	return uc.deps.Repo.SumRevenue(ctx, in.BusinessID, start, end)
}
