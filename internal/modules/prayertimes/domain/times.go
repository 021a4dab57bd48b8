package domain

import (
	"fmt"
	"time"

	"iftar/internal/platform/dates"
)

// Timetable carries the provider's clock-time strings for one day.
// Values stay strings end to end; parsing happens only where arithmetic
// is needed (countdown, next-prayer scan).
type Timetable struct {
	Fajr     string
	Sunrise  string
	Dhuhr    string
	Asr      string
	Sunset   string
	Maghrib  string
	Isha     string
	Imsak    string
	Midnight string
}

type HijriDate struct {
	Day       int
	Month     int
	MonthName string
	Year      int
}

type GregorianDate struct {
	Day       int
	Month     int
	MonthName string
	Year      int
}

// Day pairs a timetable with its Hijri and Gregorian calendar dates.
type Day struct {
	Timings   Timetable
	Hijri     HijriDate
	Gregorian GregorianDate
}

// Position is a resolved geographic location from the locator.
type Position struct {
	Lat     float64
	Lng     float64
	City    string
	Country string
}

// Remaining is one countdown sample, zero-padded for display.
type Remaining struct {
	Hours   string
	Minutes string
	Seconds string
	// Done reports that today's target is strictly in the past. The
	// countdown freezes at 00:00:00 instead of rolling to tomorrow.
	Done bool
}

// Countdown computes the time left until target ("HH:MM") on now's
// calendar day. Each call recomputes from the wall clock, so repeated
// ticks cannot drift, and the result is never negative.
func Countdown(target string, now time.Time) (Remaining, error) {
	hour, minute, err := dates.ParseClock(target)
	if err != nil {
		return Remaining{}, fmt.Errorf("countdown target: %w", err)
	}
	at := dates.AtClock(now, hour, minute)
	if at.Before(now) {
		return Remaining{Hours: "00", Minutes: "00", Seconds: "00", Done: true}, nil
	}
	total := int(at.Sub(now).Seconds())
	return Remaining{
		Hours:   fmt.Sprintf("%02d", total/3600),
		Minutes: fmt.Sprintf("%02d", (total%3600)/60),
		Seconds: fmt.Sprintf("%02d", total%60),
	}, nil
}

// Entry is one named row of the daily schedule.
type Entry struct {
	Name string
	Time string
	// Passive rows (sunrise) are informational, not prayers to complete.
	Passive bool
}

// Schedule returns the display order for the day, sunrise included.
func (t Timetable) Schedule() []Entry {
	return []Entry{
		{Name: "Fajr", Time: t.Fajr},
		{Name: "Sunrise", Time: t.Sunrise, Passive: true},
		{Name: "Dhuhr", Time: t.Dhuhr},
		{Name: "Asr", Time: t.Asr},
		{Name: "Maghrib", Time: t.Maghrib},
		{Name: "Isha", Time: t.Isha},
	}
}

// Upcoming is the next prayer relative to a reference time.
type Upcoming struct {
	Name     string
	Time     string
	Tomorrow bool
}

// NextPrayer scans Fajr through Isha and wraps to tomorrow's Fajr once
// every prayer of the day has passed.
func NextPrayer(t Timetable, now time.Time) Upcoming {
	candidates := []Entry{
		{Name: "Fajr", Time: t.Fajr},
		{Name: "Dhuhr", Time: t.Dhuhr},
		{Name: "Asr", Time: t.Asr},
		{Name: "Maghrib", Time: t.Maghrib},
		{Name: "Isha", Time: t.Isha},
	}
	for _, c := range candidates {
		hour, minute, err := dates.ParseClock(c.Time)
		if err != nil {
			continue
		}
		if dates.AtClock(now, hour, minute).After(now) {
			return Upcoming{Name: c.Name, Time: c.Time}
		}
	}
	return Upcoming{Name: "Fajr", Time: t.Fajr, Tomorrow: true}
}
