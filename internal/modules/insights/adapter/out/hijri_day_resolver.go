package out

import (
	"context"

	timesin "iftar/internal/modules/prayertimes/port/in"
	"iftar/internal/platform/clock"
)

// HijriDayResolver reads today's lunar day from the prayer timetable,
// whose provider reports the Hijri date alongside the timings. When
// the provider is unreachable it falls back to the Gregorian day of
// month so the insights view still rotates daily.
type HijriDayResolver struct {
	times timesin.Usecase
	clock clock.Clock
}

func NewHijriDayResolver(times timesin.Usecase, clk clock.Clock) HijriDayResolver {
	return HijriDayResolver{times: times, clock: clk}
}

func (r HijriDayResolver) LunarDay(ctx context.Context) (int, error) {
	times, err := r.times.Today(ctx)
	if err != nil {
		return r.clock.Now().Day(), nil
	}
	return times.HijriDay, nil
}
