package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"iftar/internal/modules/tracker/domain"
	trackerout "iftar/internal/modules/tracker/port/out"
	"iftar/internal/platform/clock"
	"iftar/internal/platform/dates"
	apperrors "iftar/internal/platform/errors"
	"iftar/internal/platform/id"
)

// TrackerService is the single owner of the application state. Every
// mutation persists the full snapshot before it becomes observable, so a
// reload always sees the last completed write.
type TrackerService struct {
	mu        sync.Mutex
	state     domain.AppState
	clock     clock.Clock
	idGen     id.Generator
	snapshots trackerout.SnapshotStore
	projector trackerout.StatsProjector
}

func NewTrackerService(clk clock.Clock, idGen id.Generator, snapshots trackerout.SnapshotStore, projector trackerout.StatsProjector) *TrackerService {
	return &TrackerService{clock: clk, idGen: idGen, snapshots: snapshots, projector: projector}
}

// Load primes the in-memory state from the snapshot store. Absence or
// corruption degrades to the built-in default; Load itself never fails.
func (s *TrackerService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.snapshots.Load(ctx)
	if err != nil {
		state = domain.DefaultState()
	}
	state.Normalize()
	s.state = state
}

func (s *TrackerService) State() domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *TrackerService) AddHabit(ctx context.Context, name, icon, color, description string) (domain.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	habit := domain.Habit{
		ID:            s.idGen.New(),
		Name:          name,
		Icon:          icon,
		Color:         color,
		Description:   description,
		CompletedDays: []string{},
	}
	if err := habit.Validate(); err != nil {
		return domain.Habit{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
	}

	next := s.state.Clone()
	next.Habits = append(next.Habits, habit)
	if err := s.commit(ctx, next); err != nil {
		return domain.Habit{}, err
	}
	return habit, nil
}

func (s *TrackerService) ToggleHabit(ctx context.Context, habitID, day string) (domain.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	idx := -1
	for i := range next.Habits {
		if next.Habits[i].ID == habitID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Habit{}, apperrors.ErrNotFound
	}
	done := next.Habits[idx].ToggleDay(day)
	if err := s.commit(ctx, next); err != nil {
		return domain.Habit{}, err
	}
	if err := s.projector.SetHabitDay(ctx, habitID, day, done); err != nil {
		return domain.Habit{}, err
	}
	return next.Habits[idx], nil
}

func (s *TrackerService) TogglePrayer(ctx context.Context, day string, prayer domain.Prayer) (map[domain.Prayer]bool, error) {
	if err := prayer.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	byPrayer := next.PrayerCompletion[day]
	if byPrayer == nil {
		byPrayer = map[domain.Prayer]bool{}
		next.PrayerCompletion[day] = byPrayer
	}
	byPrayer[prayer] = !byPrayer[prayer]
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	if err := s.projector.SetPrayerDay(ctx, day, string(prayer), byPrayer[prayer]); err != nil {
		return nil, err
	}
	out := make(map[domain.Prayer]bool, len(byPrayer))
	for p, v := range byPrayer {
		out[p] = v
	}
	return out, nil
}

// UpdateQuranProgress is last-writer-wins; surah/ayah range checks are the
// caller's contract. Page count is still clamped to the mushaf total so
// the completedPages <= totalPages invariant holds.
func (s *TrackerService) UpdateQuranProgress(ctx context.Context, surah, ayah, completedPages int) (domain.QuranProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	next.QuranProgress.LastSurah = surah
	next.QuranProgress.LastAyah = ayah
	next.QuranProgress.CompletedPages = completedPages
	if next.QuranProgress.CompletedPages < 0 {
		next.QuranProgress.CompletedPages = 0
	}
	if next.QuranProgress.CompletedPages > next.QuranProgress.TotalPages {
		next.QuranProgress.CompletedPages = next.QuranProgress.TotalPages
	}
	if err := s.commit(ctx, next); err != nil {
		return domain.QuranProgress{}, err
	}
	return next.QuranProgress, nil
}

// UpdateSettings replaces the settings entity wholesale.
func (s *TrackerService) UpdateSettings(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	if err := settings.Theme.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	next.Settings = settings
	if err := s.commit(ctx, next); err != nil {
		return domain.Settings{}, err
	}
	return next.Settings, nil
}

// HabitStreak reads the projection and computes the current run (ending
// today or yesterday) and the best run ever.
func (s *TrackerService) HabitStreak(ctx context.Context, habitID string) (current, best, total int, err error) {
	s.mu.Lock()
	known := false
	for _, h := range s.state.Habits {
		if h.ID == habitID {
			known = true
			break
		}
	}
	s.mu.Unlock()
	if !known {
		return 0, 0, 0, apperrors.ErrNotFound
	}

	days, err := s.projector.HabitDays(ctx, habitID)
	if err != nil {
		return 0, 0, 0, err
	}
	today := dates.Key(s.clock.Now())
	current, best = streaks(days, today)
	return current, best, len(days), nil
}

func (s *TrackerService) DayCounts(ctx context.Context, day string) (prayersDone, habitsDone, habitsTotal int, err error) {
	prayersDone, habitsDone, err = s.projector.DayCounts(ctx, day)
	if err != nil {
		return 0, 0, 0, err
	}
	s.mu.Lock()
	habitsTotal = len(s.state.Habits)
	s.mu.Unlock()
	return prayersDone, habitsDone, habitsTotal, nil
}

// Reindex rebuilds the projection from the snapshot, the recovery path
// for a deleted or stale index database.
func (s *TrackerService) Reindex(ctx context.Context) error {
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	state := s.State()
	for _, h := range state.Habits {
		for _, day := range h.CompletedDays {
			if err := s.projector.SetHabitDay(ctx, h.ID, day, true); err != nil {
				return err
			}
		}
	}
	for day, byPrayer := range state.PrayerCompletion {
		for p, done := range byPrayer {
			if !done {
				continue
			}
			if err := s.projector.SetPrayerDay(ctx, day, string(p), true); err != nil {
				return err
			}
		}
	}
	return nil
}

// commit persists next and only then swaps it in. Callers hold s.mu.
func (s *TrackerService) commit(ctx context.Context, next domain.AppState) error {
	if err := s.snapshots.Save(ctx, next); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	s.state = next
	return nil
}

// streaks walks the sorted day keys backwards. The current streak counts
// consecutive days ending today or yesterday; an older last completion
// means the streak is broken.
func streaks(sortedDays []string, today string) (current, best int) {
	if len(sortedDays) == 0 {
		return 0, 0
	}
	run := 1
	best = 1
	for i := 1; i < len(sortedDays); i++ {
		if isNextDay(sortedDays[i-1], sortedDays[i]) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	last := sortedDays[len(sortedDays)-1]
	if last == today || isNextDay(last, today) {
		current = run
	}
	return current, best
}

func isNextDay(a, b string) bool {
	ta, errA := time.Parse(dates.KeyLayout, a)
	tb, errB := time.Parse(dates.KeyLayout, b)
	if errA != nil || errB != nil {
		return false
	}
	return ta.AddDate(0, 0, 1).Equal(tb)
}
