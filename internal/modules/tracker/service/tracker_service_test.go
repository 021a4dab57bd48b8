package service_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"iftar/internal/modules/tracker/domain"
	"iftar/internal/modules/tracker/service"
	apperrors "iftar/internal/platform/errors"
)

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("habit-%d", s.n)
}

type fakeSnapshotStore struct {
	state   domain.AppState
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeSnapshotStore) Load(context.Context) (domain.AppState, error) {
	if f.loadErr != nil {
		return domain.AppState{}, f.loadErr
	}
	return f.state.Clone(), nil
}

func (f *fakeSnapshotStore) Save(_ context.Context, state domain.AppState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.state = state.Clone()
	return nil
}

type fakeProjector struct {
	habitDays  map[string]map[string]bool
	prayerDays map[string]map[string]bool
}

func newFakeProjector() *fakeProjector {
	return &fakeProjector{habitDays: map[string]map[string]bool{}, prayerDays: map[string]map[string]bool{}}
}

func (f *fakeProjector) Reset(context.Context) error {
	f.habitDays = map[string]map[string]bool{}
	f.prayerDays = map[string]map[string]bool{}
	return nil
}

func (f *fakeProjector) SetHabitDay(_ context.Context, habitID, day string, done bool) error {
	if f.habitDays[habitID] == nil {
		f.habitDays[habitID] = map[string]bool{}
	}
	if done {
		f.habitDays[habitID][day] = true
	} else {
		delete(f.habitDays[habitID], day)
	}
	return nil
}

func (f *fakeProjector) SetPrayerDay(_ context.Context, day, prayer string, done bool) error {
	if f.prayerDays[day] == nil {
		f.prayerDays[day] = map[string]bool{}
	}
	if done {
		f.prayerDays[day][prayer] = true
	} else {
		delete(f.prayerDays[day], prayer)
	}
	return nil
}

func (f *fakeProjector) HabitDays(_ context.Context, habitID string) ([]string, error) {
	days := make([]string, 0, len(f.habitDays[habitID]))
	for day := range f.habitDays[habitID] {
		days = append(days, day)
	}
	sort.Strings(days)
	return days, nil
}

func (f *fakeProjector) DayCounts(_ context.Context, day string) (int, int, error) {
	habits := 0
	for _, days := range f.habitDays {
		if days[day] {
			habits++
		}
	}
	return len(f.prayerDays[day]), habits, nil
}

func newService(t *testing.T, store *fakeSnapshotStore, projector *fakeProjector) *service.TrackerService {
	t.Helper()
	clk := fakeClock{now: time.Date(2026, 3, 4, 20, 0, 0, 0, time.UTC)}
	svc := service.NewTrackerService(clk, &seqID{}, store, projector)
	svc.Load(context.Background())
	return svc
}

func TestLoadDegradesToDefaultState(t *testing.T) {
	t.Parallel()
	store := &fakeSnapshotStore{loadErr: apperrors.ErrNoSavedState}
	svc := newService(t, store, newFakeProjector())

	state := svc.State()
	if len(state.Habits) != 4 {
		t.Fatalf("expected default habits on first run, got %d", len(state.Habits))
	}
	if state.QuranProgress.TotalPages != domain.TotalQuranPages {
		t.Fatalf("expected default quran progress, got %+v", state.QuranProgress)
	}
}

func TestAddHabitAssignsIDAndPersists(t *testing.T) {
	t.Parallel()
	store := &fakeSnapshotStore{loadErr: apperrors.ErrNoSavedState}
	svc := newService(t, store, newFakeProjector())

	habit, err := svc.AddHabit(context.Background(), "Night Prayer", "moon", "blue", "")
	if err != nil {
		t.Fatalf("add habit: %v", err)
	}
	if habit.ID != "habit-1" {
		t.Fatalf("expected generated id, got %q", habit.ID)
	}
	if store.saves != 1 {
		t.Fatalf("expected one save, got %d", store.saves)
	}
	if got := store.state.Habits[len(store.state.Habits)-1].Name; got != "Night Prayer" {
		t.Fatalf("expected persisted habit, got %q", got)
	}

	if _, err := svc.AddHabit(context.Background(), "   ", "", "", ""); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank name, got %v", err)
	}
}

func TestToggleHabitUnknownIDLeavesStateUntouched(t *testing.T) {
	t.Parallel()
	store := &fakeSnapshotStore{loadErr: apperrors.ErrNoSavedState}
	svc := newService(t, store, newFakeProjector())

	if _, err := svc.ToggleHabit(context.Background(), "nope", "2026-03-04"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("expected no persistence on failed toggle, got %d saves", store.saves)
	}
}

func TestToggleHabitRoundTrip(t *testing.T) {
	t.Parallel()
	store := &fakeSnapshotStore{loadErr: apperrors.ErrNoSavedState}
	projector := newFakeProjector()
	svc := newService(t, store, projector)

	habit, err := svc.ToggleHabit(context.Background(), "fasting", "2026-03-04")
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !habit.CompletedOn("2026-03-04") {
		t.Fatalf("expected habit done after toggle")
	}
	if !projector.habitDays["fasting"]["2026-03-04"] {
		t.Fatalf("expected projection updated")
	}

	habit, err = svc.ToggleHabit(context.Background(), "fasting", "2026-03-04")
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if habit.CompletedOn("2026-03-04") {
		t.Fatalf("expected habit cleared after second toggle")
	}
	if projector.habitDays["fasting"]["2026-03-04"] {
		t.Fatalf("expected projection cleared")
	}
}

func TestSaveFailureKeepsObservableState(t *testing.T) {
	t.Parallel()
	store := &fakeSnapshotStore{loadErr: apperrors.ErrNoSavedState, saveErr: errors.New("disk full")}
	svc := newService(t, store, newFakeProjector())

	if _, err := svc.ToggleHabit(context.Background(), "fasting", "2026-03-04"); err == nil {
		t.Fatalf("expected toggle to surface the save failure")
	}
	state := svc.State()
	for _, h := range state.Habits {
		if h.CompletedOn("2026-03-04") {
			t.Fatalf("expected no visible mutation after failed save")
		}
	}
}

func TestTogglePrayerValidatesAndProjects(t *testing.T) {
	t.Parallel()
	store := &fakeSnapshotStore{loadErr: apperrors.ErrNoSavedState}
	projector := newFakeProjector()
	svc := newService(t, store, projector)

	if _, err := svc.TogglePrayer(context.Background(), "2026-03-04", domain.Prayer("Brunch")); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown prayer, got %v", err)
	}

	byPrayer, err := svc.TogglePrayer(context.Background(), "2026-03-04", domain.PrayerMaghrib)
	if err != nil {
		t.Fatalf("toggle prayer: %v", err)
	}
	if !byPrayer[domain.PrayerMaghrib] {
		t.Fatalf("expected maghrib done")
	}
	if byPrayer[domain.PrayerFajr] {
		t.Fatalf("expected fajr unaffected")
	}
	if !projector.prayerDays["2026-03-04"]["Maghrib"] {
		t.Fatalf("expected prayer projection updated")
	}
}

func TestUpdateQuranProgressClampsPages(t *testing.T) {
	t.Parallel()
	store := &fakeSnapshotStore{loadErr: apperrors.ErrNoSavedState}
	svc := newService(t, store, newFakeProjector())

	progress, err := svc.UpdateQuranProgress(context.Background(), 2, 255, 10000)
	if err != nil {
		t.Fatalf("update progress: %v", err)
	}
	if progress.CompletedPages != domain.TotalQuranPages {
		t.Fatalf("expected pages clamped to %d, got %d", domain.TotalQuranPages, progress.CompletedPages)
	}
	if progress.LastSurah != 2 || progress.LastAyah != 255 {
		t.Fatalf("expected position 2:255, got %d:%d", progress.LastSurah, progress.LastAyah)
	}
}

func TestHabitStreaks(t *testing.T) {
	t.Parallel()
	store := &fakeSnapshotStore{loadErr: apperrors.ErrNoSavedState}
	projector := newFakeProjector()
	svc := newService(t, store, projector)

	// Two runs: a 2-day run, a gap, then a 3-day run ending today (2026-03-04).
	for _, day := range []string{"2026-02-20", "2026-02-21", "2026-03-02", "2026-03-03", "2026-03-04"} {
		if _, err := svc.ToggleHabit(context.Background(), "taraweeh", day); err != nil {
			t.Fatalf("toggle %s: %v", day, err)
		}
	}

	current, best, total, err := svc.HabitStreak(context.Background(), "taraweeh")
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if current != 3 || best != 3 || total != 5 {
		t.Fatalf("expected current=3 best=3 total=5, got %d/%d/%d", current, best, total)
	}

	if _, _, _, err := svc.HabitStreak(context.Background(), "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown habit, got %v", err)
	}
}

func TestStreakBrokenByOldLastCompletion(t *testing.T) {
	t.Parallel()
	store := &fakeSnapshotStore{loadErr: apperrors.ErrNoSavedState}
	svc := newService(t, store, newFakeProjector())

	for _, day := range []string{"2026-02-25", "2026-02-26", "2026-02-27", "2026-02-28"} {
		if _, err := svc.ToggleHabit(context.Background(), "dhikr", day); err != nil {
			t.Fatalf("toggle %s: %v", day, err)
		}
	}

	current, best, _, err := svc.HabitStreak(context.Background(), "dhikr")
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if current != 0 {
		t.Fatalf("expected broken streak, got current=%d", current)
	}
	if best != 4 {
		t.Fatalf("expected best=4, got %d", best)
	}
}

func TestReindexRebuildsProjection(t *testing.T) {
	t.Parallel()
	store := &fakeSnapshotStore{loadErr: apperrors.ErrNoSavedState}
	projector := newFakeProjector()
	svc := newService(t, store, projector)

	if _, err := svc.ToggleHabit(context.Background(), "fasting", "2026-03-04"); err != nil {
		t.Fatalf("toggle habit: %v", err)
	}
	if _, err := svc.TogglePrayer(context.Background(), "2026-03-04", domain.PrayerFajr); err != nil {
		t.Fatalf("toggle prayer: %v", err)
	}

	// Simulate a wiped index, then rebuild from the snapshot.
	if err := projector.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := svc.Reindex(context.Background()); err != nil {
		t.Fatalf("reindex: %v", err)
	}

	prayers, habits, _, err := svc.DayCounts(context.Background(), "2026-03-04")
	if err != nil {
		t.Fatalf("day counts: %v", err)
	}
	if prayers != 1 || habits != 1 {
		t.Fatalf("expected counts restored to 1/1, got %d/%d", prayers, habits)
	}
}
