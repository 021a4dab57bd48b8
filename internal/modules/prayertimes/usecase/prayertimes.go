package usecase

import (
	"context"
	"fmt"
	"strings"

	"iftar/internal/modules/prayertimes/domain"
	"iftar/internal/modules/prayertimes/dto"
	timesin "iftar/internal/modules/prayertimes/port/in"
	"iftar/internal/modules/prayertimes/service"
	trackerdto "iftar/internal/modules/tracker/dto"
	trackerin "iftar/internal/modules/tracker/port/in"
	"iftar/internal/platform/clock"
	apperrors "iftar/internal/platform/errors"
)

type Interactor struct {
	svc     *service.TimesService
	tracker trackerin.Usecase
	clock   clock.Clock
}

func NewInteractor(svc *service.TimesService, tracker trackerin.Usecase, clk clock.Clock) timesin.Usecase {
	return &Interactor{svc: svc, tracker: tracker, clock: clk}
}

func (i *Interactor) Today(ctx context.Context) (dto.TimesOutput, error) {
	state, err := i.tracker.State(ctx)
	if err != nil {
		return dto.TimesOutput{}, err
	}
	settings := state.Settings
	day, err := i.svc.Fetch(ctx, domain.Position{
		Lat:     settings.Lat,
		Lng:     settings.Lng,
		City:    settings.City,
		Country: settings.Country,
	}, settings.Manual, settings.School)
	if err != nil {
		return dto.TimesOutput{}, err
	}
	return toTimesOutput(day, settings.City, settings.Country), nil
}

func (i *Interactor) CountdownTo(_ context.Context, target string) (dto.CountdownOutput, error) {
	remaining, err := domain.Countdown(target, i.clock.Now())
	if err != nil {
		return dto.CountdownOutput{}, err
	}
	return dto.CountdownOutput{
		Hours:   remaining.Hours,
		Minutes: remaining.Minutes,
		Seconds: remaining.Seconds,
		Done:    remaining.Done,
	}, nil
}

func (i *Interactor) Schedule(_ context.Context, times dto.TimesOutput) ([]dto.ScheduleEntry, error) {
	timetable := toTimetable(times)
	next := domain.NextPrayer(timetable, i.clock.Now())
	entries := timetable.Schedule()
	out := make([]dto.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ScheduleEntry{
			Name:    e.Name,
			Time:    e.Time,
			Passive: e.Passive,
			Next:    !next.Tomorrow && e.Name == next.Name,
		})
	}
	return out, nil
}

func (i *Interactor) NextPrayer(_ context.Context, times dto.TimesOutput) (dto.NextPrayerOutput, error) {
	next := domain.NextPrayer(toTimetable(times), i.clock.Now())
	return dto.NextPrayerOutput{Name: next.Name, Time: next.Time, Tomorrow: next.Tomorrow}, nil
}

func (i *Interactor) SetManualLocation(ctx context.Context, city, country string) (dto.LocationOutput, error) {
	if strings.TrimSpace(city) == "" || strings.TrimSpace(country) == "" {
		return dto.LocationOutput{}, fmt.Errorf("%w: city and country are required", apperrors.ErrInvalidInput)
	}
	return i.storeLocation(ctx, trackerdto.LocationInput{City: city, Country: country, Manual: true})
}

func (i *Interactor) AutoDetectLocation(ctx context.Context) (dto.LocationOutput, error) {
	pos, err := i.svc.Locate(ctx)
	if err != nil {
		return dto.LocationOutput{}, fmt.Errorf("detect location: %w", err)
	}
	return i.storeLocation(ctx, trackerdto.LocationInput{
		City:    pos.City,
		Country: pos.Country,
		Lat:     pos.Lat,
		Lng:     pos.Lng,
		Manual:  false,
	})
}

func (i *Interactor) SetSchool(ctx context.Context, school int) error {
	if school != 0 && school != 1 {
		return fmt.Errorf("%w: school must be 0 or 1", apperrors.ErrInvalidInput)
	}
	state, err := i.tracker.State(ctx)
	if err != nil {
		return err
	}
	settings := state.Settings
	_, err = i.tracker.UpdateSettings(ctx, trackerdto.SettingsInput{
		Location: trackerdto.LocationInput{City: settings.City, Country: settings.Country, Lat: settings.Lat, Lng: settings.Lng, Manual: settings.Manual},
		Theme:    settings.Theme,
		Language: settings.Language,
		School:   school,
	})
	return err
}

func (i *Interactor) storeLocation(ctx context.Context, loc trackerdto.LocationInput) (dto.LocationOutput, error) {
	state, err := i.tracker.State(ctx)
	if err != nil {
		return dto.LocationOutput{}, err
	}
	settings := state.Settings
	// Manual entry drops stale coordinates so the city lookup wins.
	if loc.Manual {
		loc.Lat = 0
		loc.Lng = 0
	}
	if loc.City == "" {
		loc.City = settings.City
	}
	if loc.Country == "" {
		loc.Country = settings.Country
	}
	updated, err := i.tracker.UpdateSettings(ctx, trackerdto.SettingsInput{
		Location: loc,
		Theme:    settings.Theme,
		Language: settings.Language,
		School:   settings.School,
	})
	if err != nil {
		return dto.LocationOutput{}, err
	}
	return dto.LocationOutput{
		City:    updated.City,
		Country: updated.Country,
		Lat:     updated.Lat,
		Lng:     updated.Lng,
		Manual:  updated.Manual,
	}, nil
}

func toTimesOutput(day domain.Day, city, country string) dto.TimesOutput {
	return dto.TimesOutput{
		Fajr:           day.Timings.Fajr,
		Sunrise:        day.Timings.Sunrise,
		Dhuhr:          day.Timings.Dhuhr,
		Asr:            day.Timings.Asr,
		Sunset:         day.Timings.Sunset,
		Maghrib:        day.Timings.Maghrib,
		Isha:           day.Timings.Isha,
		Imsak:          day.Timings.Imsak,
		Midnight:       day.Timings.Midnight,
		HijriDay:       day.Hijri.Day,
		HijriMonth:     day.Hijri.Month,
		HijriMonthName: day.Hijri.MonthName,
		HijriYear:      day.Hijri.Year,
		GregorianDay:   day.Gregorian.Day,
		GregorianMonth: day.Gregorian.Month,
		GregorianYear:  day.Gregorian.Year,
		City:           city,
		Country:        country,
	}
}

func toTimetable(times dto.TimesOutput) domain.Timetable {
	return domain.Timetable{
		Fajr:     times.Fajr,
		Sunrise:  times.Sunrise,
		Dhuhr:    times.Dhuhr,
		Asr:      times.Asr,
		Sunset:   times.Sunset,
		Maghrib:  times.Maghrib,
		Isha:     times.Isha,
		Imsak:    times.Imsak,
		Midnight: times.Midnight,
	}
}
