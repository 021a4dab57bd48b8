package in

import (
	"context"

	"iftar/internal/modules/insights/dto"
	insightsin "iftar/internal/modules/insights/port/in"
)

type CLIHandler struct {
	usecase insightsin.Usecase
}

func NewCLIHandler(usecase insightsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ForDay(ctx context.Context, day int) (dto.InsightOutput, error) {
	return h.usecase.ForDay(ctx, day)
}

func (h CLIHandler) ForToday(ctx context.Context) (dto.InsightOutput, error) {
	return h.usecase.ForToday(ctx)
}
