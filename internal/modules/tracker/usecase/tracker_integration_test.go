package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	trackerout "iftar/internal/modules/tracker/adapter/out"
	"iftar/internal/modules/tracker/dto"
	trackerin "iftar/internal/modules/tracker/port/in"
	"iftar/internal/modules/tracker/service"
	"iftar/internal/modules/tracker/usecase"
	apperrors "iftar/internal/platform/errors"

	_ "modernc.org/sqlite"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func newTracker(t *testing.T) (uc trackerin.Usecase, statePath string) {
	t.Helper()
	dir := t.TempDir()
	statePath = filepath.Join(dir, "state.json")
	projector, err := trackerout.NewSQLiteStatsProjector(filepath.Join(dir, "stats.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	clk := fixedClock{now: time.Date(2026, 3, 4, 19, 30, 0, 0, time.UTC)}
	svc := service.NewTrackerService(clk, &seqID{}, trackerout.NewFileSnapshotStore(statePath), projector)
	svc.Load(context.Background())
	return usecase.NewInteractor(svc, clk), statePath
}

func TestToggleAndReloadRoundTrip(t *testing.T) {
	t.Parallel()
	uc, statePath := newTracker(t)
	ctx := context.Background()

	if _, err := uc.ToggleHabit(ctx, dto.ToggleHabitInput{HabitID: "fasting"}); err != nil {
		t.Fatalf("toggle habit: %v", err)
	}
	if _, err := uc.TogglePrayer(ctx, dto.TogglePrayerInput{Prayer: "Maghrib"}); err != nil {
		t.Fatalf("toggle prayer: %v", err)
	}

	payload, err := os.ReadFile(statePath)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	text := string(payload)
	if !strings.Contains(text, "2026-03-04") {
		t.Fatalf("expected snapshot to record today's key, got:\n%s", text)
	}
	if !strings.Contains(text, "Maghrib") {
		t.Fatalf("expected snapshot to record prayer completion, got:\n%s", text)
	}

	day, err := uc.DayState(ctx, "")
	if err != nil {
		t.Fatalf("day state: %v", err)
	}
	if day.Date != "2026-03-04" {
		t.Fatalf("expected empty date to resolve to today, got %q", day.Date)
	}
	if !day.Completed["Maghrib"] || day.Completed["Fajr"] {
		t.Fatalf("unexpected completion map: %v", day.Completed)
	}
}

func TestTogglePrayerFoldsCase(t *testing.T) {
	t.Parallel()
	uc, _ := newTracker(t)
	ctx := context.Background()

	day, err := uc.TogglePrayer(ctx, dto.TogglePrayerInput{Prayer: "maghrib"})
	if err != nil {
		t.Fatalf("toggle lowercase prayer: %v", err)
	}
	if !day.Completed["Maghrib"] {
		t.Fatalf("expected lowercase name folded to Maghrib, got %v", day.Completed)
	}
	if _, err := uc.TogglePrayer(ctx, dto.TogglePrayerInput{Prayer: "brunch"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown prayer, got %v", err)
	}
}

func TestStateMarksTodayDone(t *testing.T) {
	t.Parallel()
	uc, _ := newTracker(t)
	ctx := context.Background()

	if _, err := uc.ToggleHabit(ctx, dto.ToggleHabitInput{HabitID: "taraweeh"}); err != nil {
		t.Fatalf("toggle habit: %v", err)
	}
	state, err := uc.State(ctx)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	var found bool
	for _, h := range state.Habits {
		if h.ID == "taraweeh" {
			found = true
			if !h.Done {
				t.Fatalf("expected taraweeh marked done for today")
			}
		} else if h.Done {
			t.Fatalf("expected %q not done", h.ID)
		}
	}
	if !found {
		t.Fatalf("expected taraweeh in state")
	}
}

func TestAddHabitStreakAndSummary(t *testing.T) {
	t.Parallel()
	uc, _ := newTracker(t)
	ctx := context.Background()

	habit, err := uc.AddHabit(ctx, dto.AddHabitInput{Name: "Tahajjud", Icon: "star", Color: "purple"})
	if err != nil {
		t.Fatalf("add habit: %v", err)
	}
	if habit.ID != "id-1" {
		t.Fatalf("expected generated id, got %q", habit.ID)
	}

	for _, day := range []string{"2026-03-02", "2026-03-03", "2026-03-04"} {
		if _, err := uc.ToggleHabit(ctx, dto.ToggleHabitInput{HabitID: habit.ID, Date: day}); err != nil {
			t.Fatalf("toggle %s: %v", day, err)
		}
	}
	streak, err := uc.HabitStreak(ctx, habit.ID)
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if streak.Current != 3 || streak.Best != 3 || streak.Total != 3 {
		t.Fatalf("expected 3/3/3, got %d/%d/%d", streak.Current, streak.Best, streak.Total)
	}
	if streak.Name != "Tahajjud" {
		t.Fatalf("expected habit name resolved, got %q", streak.Name)
	}

	if _, err := uc.TogglePrayer(ctx, dto.TogglePrayerInput{Prayer: "Fajr"}); err != nil {
		t.Fatalf("toggle prayer: %v", err)
	}
	summary, err := uc.DaySummary(ctx, "")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.PrayersDone != 1 || summary.PrayersTotal != 5 {
		t.Fatalf("expected prayers 1/5, got %d/%d", summary.PrayersDone, summary.PrayersTotal)
	}
	if summary.HabitsDone != 1 || summary.HabitsTotal != 5 {
		t.Fatalf("expected habits 1/5, got %d/%d", summary.HabitsDone, summary.HabitsTotal)
	}
}

func TestUpdateProgressAndSettings(t *testing.T) {
	t.Parallel()
	uc, _ := newTracker(t)
	ctx := context.Background()

	progress, err := uc.UpdateQuranProgress(ctx, dto.UpdateProgressInput{Surah: 18, Ayah: 75, CompletedPages: 302})
	if err != nil {
		t.Fatalf("update progress: %v", err)
	}
	if progress.Percent != 50 {
		t.Fatalf("expected 50%%, got %d", progress.Percent)
	}

	settings, err := uc.UpdateSettings(ctx, dto.SettingsInput{
		Location: dto.LocationInput{City: "Istanbul", Country: "Turkey", Manual: true},
		Theme:    "light",
		Language: "tr",
		School:   1,
	})
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if settings.City != "Istanbul" || settings.Theme != "light" || settings.School != 1 {
		t.Fatalf("unexpected settings: %+v", settings)
	}

	if _, err := uc.UpdateSettings(ctx, dto.SettingsInput{Theme: "sepia"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid theme error, got %v", err)
	}
}

func TestReindexRestoresCountsAfterWipe(t *testing.T) {
	t.Parallel()
	uc, _ := newTracker(t)
	ctx := context.Background()

	if _, err := uc.ToggleHabit(ctx, dto.ToggleHabitInput{HabitID: "sadaqah", Date: "2026-03-01"}); err != nil {
		t.Fatalf("toggle habit: %v", err)
	}
	if _, err := uc.TogglePrayer(ctx, dto.TogglePrayerInput{Prayer: "Isha", Date: "2026-03-01"}); err != nil {
		t.Fatalf("toggle prayer: %v", err)
	}
	if err := uc.Reindex(ctx); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	summary, err := uc.DaySummary(ctx, "2026-03-01")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.PrayersDone != 1 || summary.HabitsDone != 1 {
		t.Fatalf("expected 1/1 after reindex, got %d/%d", summary.PrayersDone, summary.HabitsDone)
	}
}
