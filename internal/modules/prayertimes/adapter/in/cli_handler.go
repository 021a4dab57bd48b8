package in

import (
	"context"

	"iftar/internal/modules/prayertimes/dto"
	timesin "iftar/internal/modules/prayertimes/port/in"
)

type CLIHandler struct {
	usecase timesin.Usecase
}

func NewCLIHandler(usecase timesin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Today(ctx context.Context) (dto.TimesOutput, error) {
	return h.usecase.Today(ctx)
}

func (h CLIHandler) CountdownTo(ctx context.Context, target string) (dto.CountdownOutput, error) {
	return h.usecase.CountdownTo(ctx, target)
}

func (h CLIHandler) Schedule(ctx context.Context, times dto.TimesOutput) ([]dto.ScheduleEntry, error) {
	return h.usecase.Schedule(ctx, times)
}

func (h CLIHandler) NextPrayer(ctx context.Context, times dto.TimesOutput) (dto.NextPrayerOutput, error) {
	return h.usecase.NextPrayer(ctx, times)
}

func (h CLIHandler) SetManualLocation(ctx context.Context, city, country string) (dto.LocationOutput, error) {
	return h.usecase.SetManualLocation(ctx, city, country)
}

func (h CLIHandler) AutoDetectLocation(ctx context.Context) (dto.LocationOutput, error) {
	return h.usecase.AutoDetectLocation(ctx)
}

func (h CLIHandler) SetSchool(ctx context.Context, school int) error {
	return h.usecase.SetSchool(ctx, school)
}
