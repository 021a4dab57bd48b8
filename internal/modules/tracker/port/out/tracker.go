package out

import (
	"context"

	"iftar/internal/modules/tracker/domain"
)

// SnapshotStore persists the whole application state as one record.
// Load returns apperrors.ErrNoSavedState on first run and on any
// unreadable or corrupt snapshot; loading never fails hard.
type SnapshotStore interface {
	Load(ctx context.Context) (domain.AppState, error)
	Save(ctx context.Context, state domain.AppState) error
}

// StatsProjector maintains a queryable index of completions. It is a
// projection of the snapshot, rebuildable at any time, never the source
// of truth.
type StatsProjector interface {
	Reset(ctx context.Context) error
	SetHabitDay(ctx context.Context, habitID, day string, done bool) error
	SetPrayerDay(ctx context.Context, day string, prayer string, done bool) error
	HabitDays(ctx context.Context, habitID string) ([]string, error)
	DayCounts(ctx context.Context, day string) (prayersDone, habitsDone int, err error)
}
