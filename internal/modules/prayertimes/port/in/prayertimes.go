package in

import (
	"context"

	"iftar/internal/modules/prayertimes/dto"
)

type Usecase interface {
	// Today fetches the timetable for the location and calculation school
	// currently held in settings.
	Today(ctx context.Context) (dto.TimesOutput, error)
	// CountdownTo samples the live countdown to a clock time on today's date.
	CountdownTo(ctx context.Context, target string) (dto.CountdownOutput, error)
	// Schedule annotates the day's rows and marks the next prayer.
	Schedule(ctx context.Context, times dto.TimesOutput) ([]dto.ScheduleEntry, error)
	NextPrayer(ctx context.Context, times dto.TimesOutput) (dto.NextPrayerOutput, error)
	// SetManualLocation overrides the location by hand.
	SetManualLocation(ctx context.Context, city, country string) (dto.LocationOutput, error)
	// AutoDetectLocation resolves coordinates via the locator and stores
	// them; failures surface to the caller.
	AutoDetectLocation(ctx context.Context) (dto.LocationOutput, error)
	// SetSchool switches the Asr calculation convention (0 standard, 1 Hanafi).
	SetSchool(ctx context.Context, school int) error
}
