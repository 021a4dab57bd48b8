package domain

import "testing"

func TestHabitToggleDayFlipsMembership(t *testing.T) {
	t.Parallel()
	habit := Habit{ID: "dhikr", Name: "Read Dhikr", CompletedDays: []string{}}

	if done := habit.ToggleDay("2026-03-01"); !done {
		t.Fatalf("expected first toggle to mark day done")
	}
	if !habit.CompletedOn("2026-03-01") {
		t.Fatalf("expected day to be present after toggle")
	}
	if done := habit.ToggleDay("2026-03-01"); done {
		t.Fatalf("expected second toggle to clear the day")
	}
	if habit.CompletedOn("2026-03-01") {
		t.Fatalf("expected day to be absent after double toggle")
	}
	if len(habit.CompletedDays) != 0 {
		t.Fatalf("expected empty day set, got %v", habit.CompletedDays)
	}
}

func TestPrayerCompletionDaysAreIndependent(t *testing.T) {
	t.Parallel()
	state := DefaultState()
	state.PrayerCompletion["2026-03-01"] = map[Prayer]bool{PrayerFajr: true}
	state.PrayerCompletion["2026-03-02"] = map[Prayer]bool{PrayerIsha: true}

	if state.PrayerCompletion["2026-03-02"][PrayerFajr] {
		t.Fatalf("expected fajr on day two to stay unset")
	}
	if !state.PrayerCompletion["2026-03-01"][PrayerFajr] {
		t.Fatalf("expected fajr on day one to stay set")
	}
}

func TestQuranProgressPercent(t *testing.T) {
	t.Parallel()
	cases := []struct {
		completed int
		total     int
		want      int
	}{
		{0, 604, 0},
		{302, 604, 50},
		{604, 604, 100},
		{1, 604, 0},
		{3, 604, 0},
		{10, 0, 0},
	}
	for _, tc := range cases {
		got := QuranProgress{CompletedPages: tc.completed, TotalPages: tc.total}.Percent()
		if got != tc.want {
			t.Fatalf("percent(%d/%d): expected %d, got %d", tc.completed, tc.total, tc.want, got)
		}
	}
}

func TestDefaultStateShape(t *testing.T) {
	t.Parallel()
	state := DefaultState()
	if len(state.Habits) != 4 {
		t.Fatalf("expected four preset habits, got %d", len(state.Habits))
	}
	for _, h := range state.Habits {
		if err := h.Validate(); err != nil {
			t.Fatalf("preset habit %q invalid: %v", h.ID, err)
		}
		if len(h.CompletedDays) != 0 {
			t.Fatalf("expected preset habit %q to start empty", h.ID)
		}
	}
	if state.QuranProgress.LastSurah != 1 || state.QuranProgress.LastAyah != 1 {
		t.Fatalf("expected reader at 1:1, got %d:%d", state.QuranProgress.LastSurah, state.QuranProgress.LastAyah)
	}
	if state.QuranProgress.TotalPages != TotalQuranPages {
		t.Fatalf("expected %d total pages, got %d", TotalQuranPages, state.QuranProgress.TotalPages)
	}
	if state.Settings.Theme != ThemeDark || state.Settings.Language != "en" {
		t.Fatalf("unexpected default settings: %+v", state.Settings)
	}
}

func TestNormalizeRepairsSnapshot(t *testing.T) {
	t.Parallel()
	state := AppState{
		Habits: []Habit{{ID: "h1", Name: "One", CompletedDays: []string{"2026-03-02", "2026-03-01", "2026-03-02"}}},
		PrayerCompletion: map[string]map[Prayer]bool{
			"2026-03-01": {PrayerFajr: true, Prayer("Brunch"): true},
			"2026-03-02": {Prayer("Siesta"): true},
		},
		QuranProgress: QuranProgress{LastSurah: 0, LastAyah: -3, CompletedPages: 9000, TotalPages: 0},
		Settings:      Settings{Theme: "sepia", School: 7},
	}
	state.Normalize()

	if got := state.Habits[0].CompletedDays; len(got) != 2 || got[0] != "2026-03-01" || got[1] != "2026-03-02" {
		t.Fatalf("expected deduplicated sorted days, got %v", got)
	}
	if _, ok := state.PrayerCompletion["2026-03-01"][Prayer("Brunch")]; ok {
		t.Fatalf("expected unknown prayer to be dropped")
	}
	if _, ok := state.PrayerCompletion["2026-03-02"]; ok {
		t.Fatalf("expected day with only unknown prayers to be removed")
	}
	if state.QuranProgress.TotalPages != TotalQuranPages {
		t.Fatalf("expected total pages restored, got %d", state.QuranProgress.TotalPages)
	}
	if state.QuranProgress.CompletedPages != TotalQuranPages {
		t.Fatalf("expected completed pages clamped to total, got %d", state.QuranProgress.CompletedPages)
	}
	if state.QuranProgress.LastSurah != 1 || state.QuranProgress.LastAyah != 1 {
		t.Fatalf("expected reading position reset to 1:1, got %d:%d", state.QuranProgress.LastSurah, state.QuranProgress.LastAyah)
	}
	if state.Settings.Theme != ThemeDark {
		t.Fatalf("expected invalid theme to fall back to dark, got %q", state.Settings.Theme)
	}
	if state.Settings.School != 0 {
		t.Fatalf("expected invalid school to fall back to 0, got %d", state.Settings.School)
	}
	if state.Settings.Language != "en" {
		t.Fatalf("expected empty language to fall back to en, got %q", state.Settings.Language)
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	t.Parallel()
	state := DefaultState()
	state.PrayerCompletion["2026-03-01"] = map[Prayer]bool{PrayerFajr: true}

	clone := state.Clone()
	clone.Habits[0].CompletedDays = append(clone.Habits[0].CompletedDays, "2026-03-01")
	clone.PrayerCompletion["2026-03-01"][PrayerFajr] = false

	if len(state.Habits[0].CompletedDays) != 0 {
		t.Fatalf("expected original habit days untouched, got %v", state.Habits[0].CompletedDays)
	}
	if !state.PrayerCompletion["2026-03-01"][PrayerFajr] {
		t.Fatalf("expected original prayer completion untouched")
	}
}
