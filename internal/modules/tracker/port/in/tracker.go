package in

import (
	"context"

	"iftar/internal/modules/tracker/dto"
)

type Usecase interface {
	State(ctx context.Context) (dto.StateOutput, error)
	DayState(ctx context.Context, date string) (dto.DayOutput, error)
	AddHabit(ctx context.Context, input dto.AddHabitInput) (dto.HabitOutput, error)
	ToggleHabit(ctx context.Context, input dto.ToggleHabitInput) (dto.HabitOutput, error)
	TogglePrayer(ctx context.Context, input dto.TogglePrayerInput) (dto.DayOutput, error)
	UpdateQuranProgress(ctx context.Context, input dto.UpdateProgressInput) (dto.ProgressOutput, error)
	UpdateSettings(ctx context.Context, input dto.SettingsInput) (dto.SettingsOutput, error)
	HabitStreak(ctx context.Context, habitID string) (dto.StreakOutput, error)
	DaySummary(ctx context.Context, date string) (dto.SummaryOutput, error)
	Reindex(ctx context.Context) error
}
