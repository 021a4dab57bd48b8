package dto

type AddHabitInput struct {
	Name        string
	Icon        string
	Color       string
	Description string
}

type ToggleHabitInput struct {
	HabitID string
	Date    string
}

type TogglePrayerInput struct {
	Date   string
	Prayer string
}

type UpdateProgressInput struct {
	Surah          int
	Ayah           int
	CompletedPages int
}

type LocationInput struct {
	City    string
	Country string
	Lat     float64
	Lng     float64
	Manual  bool
}

type SettingsInput struct {
	Location LocationInput
	Theme    string
	Language string
	School   int
}

type HabitOutput struct {
	ID            string
	Name          string
	Icon          string
	Color         string
	Description   string
	CompletedDays []string
	Done          bool
}

type DayOutput struct {
	Date      string
	Completed map[string]bool
}

type ProgressOutput struct {
	LastSurah      int
	LastAyah       int
	CompletedPages int
	TotalPages     int
	Percent        int
}

type SettingsOutput struct {
	City     string
	Country  string
	Lat      float64
	Lng      float64
	Manual   bool
	Theme    string
	Language string
	School   int
}

type StateOutput struct {
	Habits   []HabitOutput
	Progress ProgressOutput
	Settings SettingsOutput
}

type StreakOutput struct {
	HabitID string
	Name    string
	Current int
	Best    int
	Total   int
}

type SummaryOutput struct {
	Date         string
	PrayersDone  int
	PrayersTotal int
	HabitsDone   int
	HabitsTotal  int
}
