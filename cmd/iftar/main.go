package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"iftar/internal/bootstrap"
	insightsdto "iftar/internal/modules/insights/dto"
	trackerdto "iftar/internal/modules/tracker/dto"
	"iftar/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "iftar",
		Short:         "Ramadan companion for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.iftar)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newHabitCmd(&dataDir))
	root.AddCommand(newPrayerCmd(&dataDir))
	root.AddCommand(newQuranCmd(&dataDir))
	root.AddCommand(newTimesCmd(&dataDir))
	root.AddCommand(newLocationCmd(&dataDir))
	root.AddCommand(newSettingsCmd(&dataDir))
	root.AddCommand(newInsightCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newReindexCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the full-screen terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newHabitCmd(dataDir *string) *cobra.Command {
	habit := &cobra.Command{Use: "habit", Short: "Daily habit tracking"}

	var name, icon, color, description string
	add := &cobra.Command{
		Use:   "add --name <name>",
		Short: "Add a habit to track",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.AddHabit(context.Background(), name, icon, color, description)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", out.Name, out.ID)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "habit name")
	add.Flags().StringVar(&icon, "icon", "", "habit icon (optional)")
	add.Flags().StringVar(&color, "color", "", "habit color (optional)")
	add.Flags().StringVar(&description, "description", "", "habit description (optional)")

	var habitID, date string
	toggle := &cobra.Command{
		Use:   "toggle --id <id>",
		Short: "Toggle a habit's completion for a day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(habitID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.ToggleHabit(context.Background(), habitID, date)
			if err != nil {
				return err
			}
			state := "not done"
			if out.Done {
				state = "done"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", out.Name, state)
			return nil
		},
	}
	toggle.Flags().StringVar(&habitID, "id", "", "habit id")
	toggle.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD (default today)")

	habit.AddCommand(add, toggle)

	habit.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List habits with today's state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			state, err := app.TrackerCLI.State(context.Background())
			if err != nil {
				return err
			}
			if len(state.Habits) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no habits")
				return nil
			}
			for _, h := range state.Habits {
				check := " "
				if h.Done {
					check = "x"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\t%s %s\t%d days\n", check, h.ID, h.Icon, h.Name, len(h.CompletedDays))
			}
			return nil
		},
	})

	var streakID string
	streak := &cobra.Command{
		Use:   "streak --id <id>",
		Short: "Show a habit's streaks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(streakID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.HabitStreak(context.Background(), streakID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: current=%d best=%d total=%d\n", out.Name, out.Current, out.Best, out.Total)
			return nil
		},
	}
	streak.Flags().StringVar(&streakID, "id", "", "habit id")
	habit.AddCommand(streak)

	return habit
}

func newPrayerCmd(dataDir *string) *cobra.Command {
	prayer := &cobra.Command{Use: "prayer", Short: "Prayer completion tracking"}

	var name, date string
	toggle := &cobra.Command{
		Use:   "toggle --name <prayer>",
		Short: "Toggle a prayer's completion for a day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required (fajr|dhuhr|asr|maghrib|isha)")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.TogglePrayer(context.Background(), date, strings.ToLower(name))
			if err != nil {
				return err
			}
			printDay(cmd, out)
			return nil
		},
	}
	toggle.Flags().StringVar(&name, "name", "", "prayer name")
	toggle.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD (default today)")
	prayer.AddCommand(toggle)

	var showDate string
	show := &cobra.Command{
		Use:   "show",
		Short: "Show a day's prayer completion",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.DayState(context.Background(), showDate)
			if err != nil {
				return err
			}
			printDay(cmd, out)
			return nil
		},
	}
	show.Flags().StringVar(&showDate, "date", "", "day as YYYY-MM-DD (default today)")
	prayer.AddCommand(show)

	return prayer
}

func printDay(cmd *cobra.Command, out trackerdto.DayOutput) {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Date)
	for _, p := range []string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"} {
		check := " "
		if out.Completed[p] {
			check = "x"
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", check, p)
	}
}

func newQuranCmd(dataDir *string) *cobra.Command {
	quran := &cobra.Command{Use: "quran", Short: "Quran reading"}

	quran.AddCommand(&cobra.Command{
		Use:   "surahs",
		Short: "List the 114 surahs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			surahs, err := app.QuranCLI.ListSurahs(context.Background())
			if err != nil {
				return err
			}
			for _, s := range surahs {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%d verses\n", s.Number, s.EnglishName, s.EnglishTranslation, s.VerseCount)
			}
			return nil
		},
	})

	var number int
	open := &cobra.Command{
		Use:   "open --surah <number>",
		Short: "Print a surah with its translation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if number < 1 {
				return fmt.Errorf("--surah is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			chapter, err := app.QuranCLI.OpenChapter(context.Background(), number)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s (%s)\n\n", chapter.Surah.Number, chapter.Surah.EnglishName, chapter.Surah.Name)
			for _, v := range chapter.Verses {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n   %s\n", v.NumberInSurah, v.Text, v.Translation)
			}
			return nil
		},
	}
	open.Flags().IntVar(&number, "surah", 0, "surah number (1-114)")
	quran.AddCommand(open)

	var pages int
	progress := &cobra.Command{
		Use:   "progress",
		Short: "Show or record reading progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.QuranCLI.Progress(context.Background())
			if pages >= 0 && err == nil {
				out, err = app.QuranCLI.RecordPages(context.Background(), pages)
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pages %d/%d (%d%%)\n", out.CompletedPages, out.TotalPages, out.Percent)
			if out.LastSurah > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "last read: surah %d, ayah %d\n", out.LastSurah, out.LastAyah)
			}
			return nil
		},
	}
	progress.Flags().IntVar(&pages, "pages", -1, "set completed pages")
	quran.AddCommand(progress)

	return quran
}

func newTimesCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "times",
		Short: "Show today's prayer timetable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			times, err := app.TimesCLI.Today(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s, %s — %d %s %d AH\n\n",
				times.City, times.Country, times.HijriDay, times.HijriMonthName, times.HijriYear)

			entries, err := app.TimesCLI.Schedule(ctx, times)
			if err != nil {
				return err
			}
			for _, e := range entries {
				marker := "  "
				if e.Next {
					marker = "> "
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s%-8s %s\n", marker, e.Name, e.Time)
			}

			countdown, err := app.TimesCLI.CountdownTo(ctx, times.Maghrib)
			if err != nil {
				return err
			}
			if countdown.Done {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\nit is time to break the fast")
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\ntime until iftar: %s:%s:%s\n",
					countdown.Hours, countdown.Minutes, countdown.Seconds)
			}
			return nil
		},
	}
}

func newLocationCmd(dataDir *string) *cobra.Command {
	location := &cobra.Command{Use: "location", Short: "Location for prayer time calculation"}

	var city, country string
	set := &cobra.Command{
		Use:   "set --city <city> --country <country>",
		Short: "Set the location by hand",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(city) == "" || strings.TrimSpace(country) == "" {
				return fmt.Errorf("--city and --country are required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TimesCLI.SetManualLocation(context.Background(), city, country)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "location set: %s, %s\n", out.City, out.Country)
			return nil
		},
	}
	set.Flags().StringVar(&city, "city", "", "city name")
	set.Flags().StringVar(&country, "country", "", "country name")
	location.AddCommand(set)

	location.AddCommand(&cobra.Command{
		Use:   "auto",
		Short: "Detect the location from the network",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TimesCLI.AutoDetectLocation(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "detected: %s, %s (%.4f, %.4f)\n", out.City, out.Country, out.Lat, out.Lng)
			return nil
		},
	})

	return location
}

func newSettingsCmd(dataDir *string) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Application settings"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			state, err := app.TrackerCLI.State(context.Background())
			if err != nil {
				return err
			}
			s := state.Settings
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "location: %s, %s (manual=%t)\n", s.City, s.Country, s.Manual)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "theme: %s\nlanguage: %s\nschool: %d\n", s.Theme, s.Language, s.School)
			return nil
		},
	})

	var themeName string
	themeCmd := &cobra.Command{
		Use:   "theme --set <dark|light>",
		Short: "Switch the color theme",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if themeName != "dark" && themeName != "light" {
				return fmt.Errorf("--set must be dark or light")
			}
			return updateSettings(cmd, *dataDir, func(input *trackerdto.SettingsInput) {
				input.Theme = themeName
			})
		},
	}
	themeCmd.Flags().StringVar(&themeName, "set", "", "theme name")
	settings.AddCommand(themeCmd)

	var language string
	languageCmd := &cobra.Command{
		Use:   "language --set <tag>",
		Short: "Switch the translation language",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(language) == "" {
				return fmt.Errorf("--set is required")
			}
			return updateSettings(cmd, *dataDir, func(input *trackerdto.SettingsInput) {
				input.Language = language
			})
		},
	}
	languageCmd.Flags().StringVar(&language, "set", "", "language tag, e.g. en or de")
	settings.AddCommand(languageCmd)

	var school int
	schoolCmd := &cobra.Command{
		Use:   "school --set <0|1>",
		Short: "Switch the Asr calculation school",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.TimesCLI.SetSchool(context.Background(), school); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "school set to %d\n", school)
			return nil
		},
	}
	schoolCmd.Flags().IntVar(&school, "set", 0, "0 standard, 1 Hanafi")
	settings.AddCommand(schoolCmd)

	return settings
}

func updateSettings(cmd *cobra.Command, dataDir string, mutate func(*trackerdto.SettingsInput)) error {
	app, err := loadApp(dataDir)
	if err != nil {
		return err
	}
	state, err := app.TrackerCLI.State(context.Background())
	if err != nil {
		return err
	}
	s := state.Settings
	input := trackerdto.SettingsInput{
		Location: trackerdto.LocationInput{
			City:    s.City,
			Country: s.Country,
			Lat:     s.Lat,
			Lng:     s.Lng,
			Manual:  s.Manual,
		},
		Theme:    s.Theme,
		Language: s.Language,
		School:   s.School,
	}
	mutate(&input)
	out, err := app.TrackerCLI.UpdateSettings(context.Background(), input)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "theme=%s language=%s school=%d\n", out.Theme, out.Language, out.School)
	return nil
}

func newInsightCmd(dataDir *string) *cobra.Command {
	var day int
	insight := &cobra.Command{
		Use:   "insight",
		Short: "Show the daily verse, hadith, and history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			var in insightsdto.InsightOutput
			if day >= 1 && day <= 30 {
				in, err = app.InsightsCLI.ForDay(ctx, day)
			} else {
				in, err = app.InsightsCLI.ForToday(ctx)
			}
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Day %d\n\n", in.Day)
			_, _ = fmt.Fprintf(w, "%s\n%s\n%s\n\n", in.VerseReference, in.VerseArabic, in.VerseTranslation)
			_, _ = fmt.Fprintf(w, "%s\nnarrated by %s (%s)\n\n", in.HadithText, in.HadithNarrator, in.HadithSource)
			_, _ = fmt.Fprintf(w, "%s\n%s\n", in.HistoricalTitle, in.HistoricalText)
			return nil
		},
	}
	insight.Flags().IntVar(&day, "day", 0, "lunar day 1-30 (default today)")
	return insight
}

func newStatsCmd(dataDir *string) *cobra.Command {
	var date string
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show a day's completion summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.DaySummary(context.Background(), date)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: prayers %d/%d, habits %d/%d\n",
				out.Date, out.PrayersDone, out.PrayersTotal, out.HabitsDone, out.HabitsTotal)
			return nil
		},
	}
	stats.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD (default today)")
	return stats
}

func newReindexCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the stats index from the state snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.TrackerCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
			return nil
		},
	}
}
