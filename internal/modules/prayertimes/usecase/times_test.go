package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"iftar/internal/modules/prayertimes/domain"
	timesin "iftar/internal/modules/prayertimes/port/in"
	"iftar/internal/modules/prayertimes/service"
	"iftar/internal/modules/prayertimes/usecase"
	trackerout "iftar/internal/modules/tracker/adapter/out"
	trackerin "iftar/internal/modules/tracker/port/in"
	trackerservice "iftar/internal/modules/tracker/service"
	trackerusecase "iftar/internal/modules/tracker/usecase"
	apperrors "iftar/internal/platform/errors"
	"iftar/internal/platform/id"

	_ "modernc.org/sqlite"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

type fakeProvider struct {
	day        domain.Day
	err        error
	lastByCity bool
	lastSchool int
	lastCity   string
	lastLat    float64
}

func (f *fakeProvider) ByCity(_ context.Context, city, _ string, _, school int) (domain.Day, error) {
	f.lastByCity = true
	f.lastCity = city
	f.lastSchool = school
	return f.day, f.err
}

func (f *fakeProvider) ByCoordinates(_ context.Context, lat, _ float64, _, school int) (domain.Day, error) {
	f.lastByCity = false
	f.lastLat = lat
	f.lastSchool = school
	return f.day, f.err
}

type fakeLocator struct {
	pos domain.Position
	err error
}

func (f fakeLocator) Locate(context.Context) (domain.Position, error) {
	return f.pos, f.err
}

func fixtureDay() domain.Day {
	return domain.Day{
		Timings: domain.Timetable{
			Fajr:    "05:12",
			Sunrise: "06:31",
			Dhuhr:   "12:28",
			Asr:     "15:45",
			Sunset:  "18:32",
			Maghrib: "18:32",
			Isha:    "19:48",
		},
		Hijri: domain.HijriDate{Day: 15, Month: 9, MonthName: "Ramadan", Year: 1447},
	}
}

func setup(t *testing.T, provider *fakeProvider, locator fakeLocator) (timesin.Usecase, trackerin.Usecase) {
	t.Helper()
	dir := t.TempDir()
	projector, err := trackerout.NewSQLiteStatsProjector(filepath.Join(dir, "stats.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	clk := fixedClock{now: time.Date(2026, 3, 4, 17, 0, 0, 0, time.UTC)}
	trackerSvc := trackerservice.NewTrackerService(clk, id.RandomHex{}, trackerout.NewFileSnapshotStore(filepath.Join(dir, "state.json")), projector)
	trackerSvc.Load(context.Background())
	tracker := trackerusecase.NewInteractor(trackerSvc, clk)
	times := usecase.NewInteractor(service.NewTimesService(provider, locator), tracker, clk)
	return times, tracker
}

func TestTodayUsesStoredCityAndSchool(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{day: fixtureDay()}
	times, _ := setup(t, provider, fakeLocator{})

	out, err := times.Today(context.Background())
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if !provider.lastByCity {
		t.Fatalf("expected city lookup for the default manual-free settings")
	}
	if provider.lastCity != "Dubai" {
		t.Fatalf("expected default city, got %q", provider.lastCity)
	}
	if out.Maghrib != "18:32" || out.HijriMonthName != "Ramadan" {
		t.Fatalf("unexpected output: %+v", out)
	}
	if out.City != "Dubai" {
		t.Fatalf("expected city echoed in output, got %q", out.City)
	}
}

func TestAutoDetectSwitchesToCoordinates(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{day: fixtureDay()}
	times, _ := setup(t, provider, fakeLocator{pos: domain.Position{Lat: 25.2, Lng: 55.27, City: "Dubai", Country: "United Arab Emirates"}})

	loc, err := times.AutoDetectLocation(context.Background())
	if err != nil {
		t.Fatalf("auto detect: %v", err)
	}
	if loc.Manual {
		t.Fatalf("expected auto-detected location to be non-manual")
	}
	if _, err := times.Today(context.Background()); err != nil {
		t.Fatalf("today: %v", err)
	}
	if provider.lastByCity {
		t.Fatalf("expected coordinate lookup after auto-detect")
	}
	if provider.lastLat != 25.2 {
		t.Fatalf("expected detected latitude, got %v", provider.lastLat)
	}
}

func TestManualLocationPinsCityLookup(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{day: fixtureDay()}
	times, _ := setup(t, provider, fakeLocator{pos: domain.Position{Lat: 25.2, Lng: 55.27}})

	if _, err := times.AutoDetectLocation(context.Background()); err != nil {
		t.Fatalf("auto detect: %v", err)
	}
	loc, err := times.SetManualLocation(context.Background(), "Istanbul", "Turkey")
	if err != nil {
		t.Fatalf("set manual: %v", err)
	}
	if !loc.Manual || loc.Lat != 0 || loc.Lng != 0 {
		t.Fatalf("expected manual location with dropped coordinates, got %+v", loc)
	}

	if _, err := times.Today(context.Background()); err != nil {
		t.Fatalf("today: %v", err)
	}
	if !provider.lastByCity || provider.lastCity != "Istanbul" {
		t.Fatalf("expected city lookup for Istanbul, got byCity=%v city=%q", provider.lastByCity, provider.lastCity)
	}

	if _, err := times.SetManualLocation(context.Background(), "", "Turkey"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank city, got %v", err)
	}
}

func TestSetSchoolPersistsAndValidates(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{day: fixtureDay()}
	times, tracker := setup(t, provider, fakeLocator{})

	if err := times.SetSchool(context.Background(), 1); err != nil {
		t.Fatalf("set school: %v", err)
	}
	state, err := tracker.State(context.Background())
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Settings.School != 1 {
		t.Fatalf("expected school persisted, got %d", state.Settings.School)
	}

	if _, err := times.Today(context.Background()); err != nil {
		t.Fatalf("today: %v", err)
	}
	if provider.lastSchool != 1 {
		t.Fatalf("expected school flag passed through, got %d", provider.lastSchool)
	}

	if err := times.SetSchool(context.Background(), 3); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid school error, got %v", err)
	}
}

func TestCountdownToSamplesFixedClock(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{day: fixtureDay()}
	times, _ := setup(t, provider, fakeLocator{})

	// Clock is pinned at 17:00:00; maghrib at 18:32.
	countdown, err := times.CountdownTo(context.Background(), "18:32")
	if err != nil {
		t.Fatalf("countdown: %v", err)
	}
	if countdown.Hours != "01" || countdown.Minutes != "32" || countdown.Seconds != "00" {
		t.Fatalf("expected 01:32:00, got %s:%s:%s", countdown.Hours, countdown.Minutes, countdown.Seconds)
	}
}

func TestScheduleMarksNextPrayer(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{day: fixtureDay()}
	times, _ := setup(t, provider, fakeLocator{})

	today, err := times.Today(context.Background())
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	entries, err := times.Schedule(context.Background(), today)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	for _, e := range entries {
		if e.Name == "Maghrib" && !e.Next {
			t.Fatalf("expected maghrib marked next at 17:00")
		}
		if e.Name != "Maghrib" && e.Next {
			t.Fatalf("expected only maghrib marked next, got %s", e.Name)
		}
	}
}
