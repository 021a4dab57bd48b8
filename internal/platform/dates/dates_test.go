package dates

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{"05:12", 5, 12, true},
		{"18:32 (+04)", 18, 32, true},
		{" 00:00 ", 0, 0, true},
		{"23:59", 23, 59, true},
		{"24:00", 0, 0, false},
		{"12:60", 0, 0, false},
		{"noonish", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tc := range cases {
		hour, minute, err := ParseClock(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("expected error for %q", tc.in)
			}
			continue
		}
		if hour != tc.hour || minute != tc.minute {
			t.Fatalf("parse %q: expected %d:%d, got %d:%d", tc.in, tc.hour, tc.minute, hour, minute)
		}
	}
}

func TestAtClockKeepsDayAndLocation(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("GST", 4*3600)
	ref := time.Date(2026, 3, 4, 23, 55, 41, 0, loc)
	at := AtClock(ref, 5, 12)
	if at.Year() != 2026 || at.Month() != 3 || at.Day() != 4 {
		t.Fatalf("expected same calendar day, got %v", at)
	}
	if at.Hour() != 5 || at.Minute() != 12 || at.Second() != 0 {
		t.Fatalf("expected 05:12:00, got %v", at)
	}
	if at.Location() != loc {
		t.Fatalf("expected location preserved, got %v", at.Location())
	}
}

func TestKey(t *testing.T) {
	t.Parallel()
	if got := Key(time.Date(2026, 3, 4, 1, 2, 3, 0, time.UTC)); got != "2026-03-04" {
		t.Fatalf("expected 2026-03-04, got %q", got)
	}
}
