package out

import (
	"context"

	"iftar/internal/modules/insights/domain"
)

// Source supplies the full insight dataset, ordered by day.
type Source interface {
	All() ([]domain.Insight, error)
}

// DayResolver reports today's day of the lunar month.
type DayResolver interface {
	LunarDay(ctx context.Context) (int, error)
}
