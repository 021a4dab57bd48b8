package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local wall-clock time. Prayer timetables and the
// iftar countdown are inherently local, so there is no UTC normalization.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
