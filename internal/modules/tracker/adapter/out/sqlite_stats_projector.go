package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	trackerout "iftar/internal/modules/tracker/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteStatsProjector struct {
	db *sql.DB
}

func NewSQLiteStatsProjector(dbPath string) (trackerout.StatsProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteStatsProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteStatsProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS habit_days (
  habit_id TEXT NOT NULL,
  day TEXT NOT NULL,
  PRIMARY KEY (habit_id, day)
);
CREATE TABLE IF NOT EXISTS prayer_days (
  day TEXT NOT NULL,
  prayer TEXT NOT NULL,
  PRIMARY KEY (day, prayer)
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create stats tables: %w", err)
	}
	return nil
}

func (s *SQLiteStatsProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM habit_days`); err != nil {
		return fmt.Errorf("reset habit_days: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM prayer_days`); err != nil {
		return fmt.Errorf("reset prayer_days: %w", err)
	}
	return nil
}

func (s *SQLiteStatsProjector) SetHabitDay(ctx context.Context, habitID, day string, done bool) error {
	var err error
	if done {
		_, err = s.db.ExecContext(ctx, `INSERT OR IGNORE INTO habit_days (habit_id, day) VALUES (?, ?)`, habitID, day)
	} else {
		_, err = s.db.ExecContext(ctx, `DELETE FROM habit_days WHERE habit_id = ? AND day = ?`, habitID, day)
	}
	if err != nil {
		return fmt.Errorf("project habit day: %w", err)
	}
	return nil
}

func (s *SQLiteStatsProjector) SetPrayerDay(ctx context.Context, day, prayer string, done bool) error {
	var err error
	if done {
		_, err = s.db.ExecContext(ctx, `INSERT OR IGNORE INTO prayer_days (day, prayer) VALUES (?, ?)`, day, prayer)
	} else {
		_, err = s.db.ExecContext(ctx, `DELETE FROM prayer_days WHERE day = ? AND prayer = ?`, day, prayer)
	}
	if err != nil {
		return fmt.Errorf("project prayer day: %w", err)
	}
	return nil
}

func (s *SQLiteStatsProjector) HabitDays(ctx context.Context, habitID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT day FROM habit_days WHERE habit_id = ? ORDER BY day`, habitID)
	if err != nil {
		return nil, fmt.Errorf("query habit days: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scan habit day: %w", err)
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

func (s *SQLiteStatsProjector) DayCounts(ctx context.Context, day string) (prayersDone, habitsDone int, err error) {
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM prayer_days WHERE day = ?`, day).Scan(&prayersDone); err != nil {
		return 0, 0, fmt.Errorf("count prayers: %w", err)
	}
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM habit_days WHERE day = ?`, day).Scan(&habitsDone); err != nil {
		return 0, 0, fmt.Errorf("count habits: %w", err)
	}
	return prayersDone, habitsDone, nil
}
