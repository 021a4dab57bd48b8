package in

import (
	"context"

	"iftar/internal/modules/insights/dto"
)

type Usecase interface {
	// ForDay returns the insight for the given lunar-month day,
	// falling back to the first entry when the day has none.
	ForDay(ctx context.Context, day int) (dto.InsightOutput, error)
	// ForToday resolves today's lunar day and returns its insight.
	ForToday(ctx context.Context) (dto.InsightOutput, error)
	All(ctx context.Context) ([]dto.InsightOutput, error)
}
