package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// KeyLayout is the calendar-day key used throughout the persisted state.
const KeyLayout = "2006-01-02"

func Key(t time.Time) string {
	return t.Format(KeyLayout)
}

// ParseClock parses a 24-hour "HH:MM" string. Provider payloads sometimes
// carry a timezone suffix ("18:32 (+04)"), which is ignored.
func ParseClock(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed clock time %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed clock hour %q: %w", s, err)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed clock minute %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("clock time %q out of range", s)
	}
	return hour, minute, nil
}

// AtClock pins a clock time onto the calendar day of ref, in ref's location.
func AtClock(ref time.Time, hour, minute int) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), hour, minute, 0, 0, ref.Location())
}
