package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Streak returns the user's streak length and last activity date, zero
// values when the user has never practiced.
func (s *Store) Streak(ctx context.Context, userID int64) (int, *time.Time, error) {
	var current int
	var lastActive sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT current_streak, last_active_date FROM practice_streaks
		WHERE user_id = $1`, userID).Scan(&current, &lastActive)
	if err == sql.ErrNoRows {
		return 0, nil, nil
	}
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read streak: %w", err)
	}

	if !lastActive.Valid {
		return current, nil, nil
	}
	t, err := time.Parse(dayFormat, lastActive.String)
	if err != nil {
		return 0, nil, fmt.Errorf("malformed last_active_date %q: %w", lastActive.String, err)
	}
	return current, &t, nil
}

// SetStreak upserts the streak state.
func (s *Store) SetStreak(ctx context.Context, userID int64, streak int, lastActive time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO practice_streaks (user_id, current_streak, last_active_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET current_streak = $2, last_active_date = $3`,
		userID, streak, lastActive.Format(dayFormat))
	if err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}
	return nil
}
