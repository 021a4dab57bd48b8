package in

import (
	"context"

	"iftar/internal/modules/tracker/dto"
	trackerin "iftar/internal/modules/tracker/port/in"
)

type CLIHandler struct {
	usecase trackerin.Usecase
}

func NewCLIHandler(usecase trackerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) State(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.State(ctx)
}

func (h CLIHandler) DayState(ctx context.Context, date string) (dto.DayOutput, error) {
	return h.usecase.DayState(ctx, date)
}

func (h CLIHandler) AddHabit(ctx context.Context, name, icon, color, description string) (dto.HabitOutput, error) {
	return h.usecase.AddHabit(ctx, dto.AddHabitInput{Name: name, Icon: icon, Color: color, Description: description})
}

func (h CLIHandler) ToggleHabit(ctx context.Context, habitID, date string) (dto.HabitOutput, error) {
	return h.usecase.ToggleHabit(ctx, dto.ToggleHabitInput{HabitID: habitID, Date: date})
}

func (h CLIHandler) TogglePrayer(ctx context.Context, date, prayer string) (dto.DayOutput, error) {
	return h.usecase.TogglePrayer(ctx, dto.TogglePrayerInput{Date: date, Prayer: prayer})
}

func (h CLIHandler) UpdateQuranProgress(ctx context.Context, surah, ayah, pages int) (dto.ProgressOutput, error) {
	return h.usecase.UpdateQuranProgress(ctx, dto.UpdateProgressInput{Surah: surah, Ayah: ayah, CompletedPages: pages})
}

func (h CLIHandler) UpdateSettings(ctx context.Context, input dto.SettingsInput) (dto.SettingsOutput, error) {
	return h.usecase.UpdateSettings(ctx, input)
}

func (h CLIHandler) HabitStreak(ctx context.Context, habitID string) (dto.StreakOutput, error) {
	return h.usecase.HabitStreak(ctx, habitID)
}

func (h CLIHandler) DaySummary(ctx context.Context, date string) (dto.SummaryOutput, error) {
	return h.usecase.DaySummary(ctx, date)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
