package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	SchemaVersion = 1
	// TotalQuranPages is the page count of the standard Madani mushaf.
	TotalQuranPages = 604
)

type Prayer string

const (
	PrayerFajr    Prayer = "Fajr"
	PrayerDhuhr   Prayer = "Dhuhr"
	PrayerAsr     Prayer = "Asr"
	PrayerMaghrib Prayer = "Maghrib"
	PrayerIsha    Prayer = "Isha"
)

// Prayers lists the five daily prayers in day order.
var Prayers = [5]Prayer{PrayerFajr, PrayerDhuhr, PrayerAsr, PrayerMaghrib, PrayerIsha}

func (p Prayer) Validate() error {
	switch p {
	case PrayerFajr, PrayerDhuhr, PrayerAsr, PrayerMaghrib, PrayerIsha:
		return nil
	default:
		return fmt.Errorf("unknown prayer %q", string(p))
	}
}

type Habit struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Icon          string   `json:"icon"`
	Color         string   `json:"color"`
	Description   string   `json:"description,omitempty"`
	CompletedDays []string `json:"completed_days"`
}

func (h Habit) CompletedOn(day string) bool {
	for _, d := range h.CompletedDays {
		if d == day {
			return true
		}
	}
	return false
}

// ToggleDay flips day membership and reports the new membership value.
// CompletedDays keeps set semantics even though it is stored as a slice.
func (h *Habit) ToggleDay(day string) bool {
	for i, d := range h.CompletedDays {
		if d == day {
			h.CompletedDays = append(h.CompletedDays[:i], h.CompletedDays[i+1:]...)
			return false
		}
	}
	h.CompletedDays = append(h.CompletedDays, day)
	return true
}

func (h Habit) Validate() error {
	if strings.TrimSpace(h.ID) == "" {
		return fmt.Errorf("habit id is required")
	}
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("habit name is required")
	}
	return nil
}

type QuranProgress struct {
	LastSurah      int `json:"last_surah"`
	LastAyah       int `json:"last_ayah"`
	CompletedPages int `json:"completed_pages"`
	TotalPages     int `json:"total_pages"`
}

// Percent is the overall reading progress, rounded to the nearest integer.
func (q QuranProgress) Percent() int {
	if q.TotalPages <= 0 {
		return 0
	}
	return int(math.Round(float64(q.CompletedPages) / float64(q.TotalPages) * 100))
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) Validate() error {
	switch t {
	case ThemeDark, ThemeLight:
		return nil
	default:
		return fmt.Errorf("unknown theme %q", string(t))
	}
}

type Location struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
	// Manual marks the location as user-entered; auto-detected coordinates
	// are ignored while it is set.
	Manual bool `json:"manual,omitempty"`
}

type Settings struct {
	Location Location `json:"location"`
	Theme    Theme    `json:"theme"`
	Language string   `json:"language"`
	// School selects the Asr calculation convention passed through to the
	// prayer-time provider: 0 standard, 1 Hanafi.
	School int `json:"school"`
}

// AppState is the aggregate persisted snapshot. The tracker service owns
// the only mutable copy; everything else sees clones.
type AppState struct {
	SchemaVersion    int                        `json:"schema_version"`
	Habits           []Habit                    `json:"habits"`
	PrayerCompletion map[string]map[Prayer]bool `json:"prayer_completion"`
	QuranProgress    QuranProgress              `json:"quran_progress"`
	Settings         Settings                   `json:"settings"`
}

// DefaultState is the first-run snapshot: four preset habits, nothing
// completed, reader at the opening of the Quran.
func DefaultState() AppState {
	return AppState{
		SchemaVersion: SchemaVersion,
		Habits: []Habit{
			{ID: "fasting", Name: "Fasting Today", Icon: "fast", Color: "green", CompletedDays: []string{}},
			{ID: "taraweeh", Name: "Taraweeh", Icon: "moon", Color: "gold", CompletedDays: []string{}},
			{ID: "dhikr", Name: "Read Dhikr", Icon: "sparkle", Color: "orange", Description: "100x SubhanAllah", CompletedDays: []string{}},
			{ID: "sadaqah", Name: "Give Sadaqah", Icon: "hands", Color: "blue", Description: "Daily small donation", CompletedDays: []string{}},
		},
		PrayerCompletion: map[string]map[Prayer]bool{},
		QuranProgress:    QuranProgress{LastSurah: 1, LastAyah: 1, CompletedPages: 0, TotalPages: TotalQuranPages},
		Settings: Settings{
			Location: Location{City: "Dubai", Country: "United Arab Emirates"},
			Theme:    ThemeDark,
			Language: "en",
		},
	}
}

// Normalize repairs a loaded snapshot in place: missing sections get
// defaults, completed-day sets are deduplicated and sorted, unknown
// prayer names are dropped, and page progress is clamped to the total.
// A snapshot that survives Normalize is safe to operate on.
func (s *AppState) Normalize() {
	def := DefaultState()
	s.SchemaVersion = SchemaVersion
	if s.Habits == nil {
		s.Habits = def.Habits
	}
	for i := range s.Habits {
		s.Habits[i].CompletedDays = dedupeSorted(s.Habits[i].CompletedDays)
	}
	if s.PrayerCompletion == nil {
		s.PrayerCompletion = map[string]map[Prayer]bool{}
	}
	for day, byPrayer := range s.PrayerCompletion {
		for p := range byPrayer {
			if p.Validate() != nil {
				delete(byPrayer, p)
			}
		}
		if len(byPrayer) == 0 {
			delete(s.PrayerCompletion, day)
		}
	}
	if s.QuranProgress.TotalPages <= 0 {
		s.QuranProgress.TotalPages = TotalQuranPages
	}
	if s.QuranProgress.CompletedPages < 0 {
		s.QuranProgress.CompletedPages = 0
	}
	if s.QuranProgress.CompletedPages > s.QuranProgress.TotalPages {
		s.QuranProgress.CompletedPages = s.QuranProgress.TotalPages
	}
	if s.QuranProgress.LastSurah < 1 {
		s.QuranProgress.LastSurah = def.QuranProgress.LastSurah
	}
	if s.QuranProgress.LastAyah < 1 {
		s.QuranProgress.LastAyah = def.QuranProgress.LastAyah
	}
	if s.Settings.Theme.Validate() != nil {
		s.Settings.Theme = def.Settings.Theme
	}
	if strings.TrimSpace(s.Settings.Language) == "" {
		s.Settings.Language = def.Settings.Language
	}
	if strings.TrimSpace(s.Settings.Location.City) == "" && strings.TrimSpace(s.Settings.Location.Country) == "" {
		s.Settings.Location = def.Settings.Location
	}
	if s.Settings.School != 0 && s.Settings.School != 1 {
		s.Settings.School = 0
	}
}

// Clone deep-copies the state so read snapshots never alias the owned copy.
func (s AppState) Clone() AppState {
	out := s
	out.Habits = make([]Habit, len(s.Habits))
	for i, h := range s.Habits {
		out.Habits[i] = h
		out.Habits[i].CompletedDays = append([]string(nil), h.CompletedDays...)
	}
	out.PrayerCompletion = make(map[string]map[Prayer]bool, len(s.PrayerCompletion))
	for day, byPrayer := range s.PrayerCompletion {
		inner := make(map[Prayer]bool, len(byPrayer))
		for p, done := range byPrayer {
			inner[p] = done
		}
		out.PrayerCompletion[day] = inner
	}
	return out
}

func dedupeSorted(days []string) []string {
	seen := make(map[string]struct{}, len(days))
	out := make([]string, 0, len(days))
	for _, d := range days {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
