package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/wordlearn/pkg/models"
)

// SetReminder upserts the user's daily reminder time and next trigger.
func (s *Store) SetReminder(ctx context.Context, userID int64, remindTime string, next time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reminders (user_id, remind_time, next_remind)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET remind_time = $2, next_remind = $3`,
		userID, remindTime, next)
	if err != nil {
		return fmt.Errorf("failed to set reminder: %w", err)
	}
	return nil
}

// DueReminders returns all reminders whose trigger has passed.
func (s *Store) DueReminders(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := s.db.SelectContext(ctx, &reminders, `
		SELECT user_id, remind_time, next_remind FROM reminders
		WHERE next_remind <= $1`, now)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due reminders: %w", err)
	}
	return reminders, nil
}

// UpdateNextReminder advances a reminder's next trigger.
func (s *Store) UpdateNextReminder(ctx context.Context, userID int64, next time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE reminders SET next_remind = $2 WHERE user_id = $1`,
		userID, next)
	if err != nil {
		return fmt.Errorf("failed to advance reminder: %w", err)
	}
	return nil
}

// CountAllDueWords counts every due, non-deleted word for the user,
// regardless of today's pool. Used for reminder messages.
func (s *Store) CountAllDueWords(ctx context.Context, userID int64, now time.Time) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM word_practice
		WHERE user_id = $1 AND next_date <= $2 AND deleted = FALSE`,
		userID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to count due words: %w", err)
	}
	return count, nil
}
