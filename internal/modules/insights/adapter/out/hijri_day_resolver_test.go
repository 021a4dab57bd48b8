package out_test

import (
	"context"
	"errors"
	"testing"
	"time"

	out "iftar/internal/modules/insights/adapter/out"
	timesdto "iftar/internal/modules/prayertimes/dto"
)

type fakeTimes struct {
	times timesdto.TimesOutput
	err   error
}

func (f fakeTimes) Today(context.Context) (timesdto.TimesOutput, error) {
	return f.times, f.err
}

func (f fakeTimes) CountdownTo(context.Context, string) (timesdto.CountdownOutput, error) {
	return timesdto.CountdownOutput{}, nil
}

func (f fakeTimes) Schedule(context.Context, timesdto.TimesOutput) ([]timesdto.ScheduleEntry, error) {
	return nil, nil
}

func (f fakeTimes) NextPrayer(context.Context, timesdto.TimesOutput) (timesdto.NextPrayerOutput, error) {
	return timesdto.NextPrayerOutput{}, nil
}

func (f fakeTimes) SetManualLocation(context.Context, string, string) (timesdto.LocationOutput, error) {
	return timesdto.LocationOutput{}, nil
}

func (f fakeTimes) AutoDetectLocation(context.Context) (timesdto.LocationOutput, error) {
	return timesdto.LocationOutput{}, nil
}

func (f fakeTimes) SetSchool(context.Context, int) error { return nil }

type marchClock struct{}

func (marchClock) Now() time.Time {
	return time.Date(2026, 3, 21, 12, 0, 0, 0, time.UTC)
}

func TestLunarDayFromProvider(t *testing.T) {
	t.Parallel()
	resolver := out.NewHijriDayResolver(fakeTimes{times: timesdto.TimesOutput{HijriDay: 15}}, marchClock{})
	day, err := resolver.LunarDay(context.Background())
	if err != nil {
		t.Fatalf("lunar day: %v", err)
	}
	if day != 15 {
		t.Fatalf("expected hijri day 15, got %d", day)
	}
}

func TestLunarDayFallsBackToCalendarDay(t *testing.T) {
	t.Parallel()
	resolver := out.NewHijriDayResolver(fakeTimes{err: errors.New("offline")}, marchClock{})
	day, err := resolver.LunarDay(context.Background())
	if err != nil {
		t.Fatalf("expected fallback, got error %v", err)
	}
	if day != 21 {
		t.Fatalf("expected calendar day 21, got %d", day)
	}
}
