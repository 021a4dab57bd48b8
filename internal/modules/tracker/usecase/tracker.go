package usecase

import (
	"context"
	"strings"

	"iftar/internal/modules/tracker/domain"
	"iftar/internal/modules/tracker/dto"
	trackerin "iftar/internal/modules/tracker/port/in"
	"iftar/internal/modules/tracker/service"
	"iftar/internal/platform/clock"
	"iftar/internal/platform/dates"
)

type Interactor struct {
	svc   *service.TrackerService
	clock clock.Clock
}

func NewInteractor(svc *service.TrackerService, clk clock.Clock) trackerin.Usecase {
	return &Interactor{svc: svc, clock: clk}
}

// today resolves an empty date input to the current day key, so
// callers can omit the date for "now".
func (i *Interactor) today(date string) string {
	if date != "" {
		return date
	}
	return dates.Key(i.clock.Now())
}

func (i *Interactor) State(_ context.Context) (dto.StateOutput, error) {
	state := i.svc.State()
	today := i.today("")
	out := dto.StateOutput{
		Habits:   make([]dto.HabitOutput, 0, len(state.Habits)),
		Progress: toProgressOutput(state.QuranProgress),
		Settings: toSettingsOutput(state.Settings),
	}
	for _, h := range state.Habits {
		out.Habits = append(out.Habits, toHabitOutput(h, today))
	}
	return out, nil
}

func (i *Interactor) DayState(_ context.Context, date string) (dto.DayOutput, error) {
	date = i.today(date)
	state := i.svc.State()
	return toDayOutput(date, state.PrayerCompletion[date]), nil
}

func (i *Interactor) AddHabit(ctx context.Context, input dto.AddHabitInput) (dto.HabitOutput, error) {
	habit, err := i.svc.AddHabit(ctx, input.Name, input.Icon, input.Color, input.Description)
	if err != nil {
		return dto.HabitOutput{}, err
	}
	return toHabitOutput(habit, ""), nil
}

func (i *Interactor) ToggleHabit(ctx context.Context, input dto.ToggleHabitInput) (dto.HabitOutput, error) {
	day := i.today(input.Date)
	habit, err := i.svc.ToggleHabit(ctx, input.HabitID, day)
	if err != nil {
		return dto.HabitOutput{}, err
	}
	return toHabitOutput(habit, day), nil
}

func (i *Interactor) TogglePrayer(ctx context.Context, input dto.TogglePrayerInput) (dto.DayOutput, error) {
	day := i.today(input.Date)
	byPrayer, err := i.svc.TogglePrayer(ctx, day, canonicalPrayer(input.Prayer))
	if err != nil {
		return dto.DayOutput{}, err
	}
	return toDayOutput(day, byPrayer), nil
}

func (i *Interactor) UpdateQuranProgress(ctx context.Context, input dto.UpdateProgressInput) (dto.ProgressOutput, error) {
	progress, err := i.svc.UpdateQuranProgress(ctx, input.Surah, input.Ayah, input.CompletedPages)
	if err != nil {
		return dto.ProgressOutput{}, err
	}
	return toProgressOutput(progress), nil
}

func (i *Interactor) UpdateSettings(ctx context.Context, input dto.SettingsInput) (dto.SettingsOutput, error) {
	settings, err := i.svc.UpdateSettings(ctx, domain.Settings{
		Location: domain.Location{
			City:    input.Location.City,
			Country: input.Location.Country,
			Lat:     input.Location.Lat,
			Lng:     input.Location.Lng,
			Manual:  input.Location.Manual,
		},
		Theme:    domain.Theme(input.Theme),
		Language: input.Language,
		School:   input.School,
	})
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toSettingsOutput(settings), nil
}

func (i *Interactor) HabitStreak(ctx context.Context, habitID string) (dto.StreakOutput, error) {
	current, best, total, err := i.svc.HabitStreak(ctx, habitID)
	if err != nil {
		return dto.StreakOutput{}, err
	}
	name := habitID
	for _, h := range i.svc.State().Habits {
		if h.ID == habitID {
			name = h.Name
			break
		}
	}
	return dto.StreakOutput{HabitID: habitID, Name: name, Current: current, Best: best, Total: total}, nil
}

func (i *Interactor) DaySummary(ctx context.Context, date string) (dto.SummaryOutput, error) {
	date = i.today(date)
	prayersDone, habitsDone, habitsTotal, err := i.svc.DayCounts(ctx, date)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return dto.SummaryOutput{
		Date:         date,
		PrayersDone:  prayersDone,
		PrayersTotal: len(domain.Prayers),
		HabitsDone:   habitsDone,
		HabitsTotal:  habitsTotal,
	}, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

// canonicalPrayer folds case so "maghrib" from key handlers and the CLI
// matches the stored prayer names.
func canonicalPrayer(name string) domain.Prayer {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Prayer(name)
	}
	return domain.Prayer(strings.ToUpper(name[:1]) + strings.ToLower(name[1:]))
}

func toHabitOutput(h domain.Habit, day string) dto.HabitOutput {
	return dto.HabitOutput{
		ID:            h.ID,
		Name:          h.Name,
		Icon:          h.Icon,
		Color:         h.Color,
		Description:   h.Description,
		CompletedDays: append([]string(nil), h.CompletedDays...),
		Done:          day != "" && h.CompletedOn(day),
	}
}

func toDayOutput(date string, byPrayer map[domain.Prayer]bool) dto.DayOutput {
	out := dto.DayOutput{Date: date, Completed: make(map[string]bool, len(domain.Prayers))}
	for _, p := range domain.Prayers {
		out.Completed[string(p)] = byPrayer[p]
	}
	return out
}

func toProgressOutput(q domain.QuranProgress) dto.ProgressOutput {
	return dto.ProgressOutput{
		LastSurah:      q.LastSurah,
		LastAyah:       q.LastAyah,
		CompletedPages: q.CompletedPages,
		TotalPages:     q.TotalPages,
		Percent:        q.Percent(),
	}
}

func toSettingsOutput(s domain.Settings) dto.SettingsOutput {
	return dto.SettingsOutput{
		City:     s.Location.City,
		Country:  s.Location.Country,
		Lat:      s.Location.Lat,
		Lng:      s.Location.Lng,
		Manual:   s.Location.Manual,
		Theme:    string(s.Theme),
		Language: s.Language,
		School:   s.School,
	}
}
