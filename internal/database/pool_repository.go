package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/wordlearn/pkg/models"
)

// practiceWordColumns is the select list scanned by scanPracticeWord.
const practiceWordColumns = `
	wp.id, wp.user_id, wp.word_id, wp.stage, wp.next_date,
	wp.deleted, wp.consecutive_failures,
	w.id, w.target, w.source
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPracticeWord(row rowScanner) (*models.PracticeWord, error) {
	var p models.PracticeWord
	err := row.Scan(
		&p.ID, &p.UserID, &p.WordID, &p.Stage, &p.NextDate,
		&p.Deleted, &p.ConsecutiveFailures,
		&p.Word.ID, &p.Word.Target, &p.Word.Source,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// TodayPool returns the progress row ids already selected for the day,
// in pool order.
func (s *Store) TodayPool(ctx context.Context, userID int64, day time.Time) ([]int64, error) {
	query := `
		SELECT tp.word_practice_id
		FROM today_practice tp
		JOIN word_practice wp ON wp.id = tp.word_practice_id
		WHERE tp.date = $1 AND wp.user_id = $2
		ORDER BY tp.position
	`
	var ids []int64
	if err := s.db.SelectContext(ctx, &ids, query, day.Format(dayFormat), userID); err != nil {
		return nil, fmt.Errorf("failed to fetch today's pool: %w", err)
	}
	return ids, nil
}

// CreateTodayPool selects up to limit random due progress rows and
// persists them as the day's pool. Re-running for the same day only adds
// rows that are not members yet.
func (s *Store) CreateTodayPool(ctx context.Context, userID int64, now, day time.Time, limit int) ([]int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	selectQuery := `
		SELECT id FROM word_practice
		WHERE user_id = $1
		  AND next_date <= $2
		  AND deleted = FALSE
		ORDER BY RANDOM()
		LIMIT $3
	`
	var ids []int64
	if err := tx.SelectContext(ctx, &ids, selectQuery, userID, now, limit); err != nil {
		return nil, fmt.Errorf("failed to select due words: %w", err)
	}

	insertQuery := `
		INSERT INTO today_practice (word_practice_id, date, position)
		VALUES ($1, $2, $3)
		ON CONFLICT (word_practice_id, date) DO NOTHING
	`
	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, insertQuery, id, day.Format(dayFormat), i); err != nil {
			return nil, fmt.Errorf("failed to persist pool entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit pool: %w", err)
	}
	return ids, nil
}

// PoolDueWords returns up to limit due words from the day's pool that are
// not already queued in the current session, in pool order.
func (s *Store) PoolDueWords(ctx context.Context, userID int64, now, day time.Time, limit int) ([]models.PracticeWord, error) {
	query := `
		SELECT ` + practiceWordColumns + `
		FROM word_practice wp
		JOIN words w ON w.id = wp.word_id
		JOIN today_practice tp ON tp.word_practice_id = wp.id AND tp.date = $1
		WHERE wp.user_id = $2
		  AND wp.next_date <= $3
		  AND wp.deleted = FALSE
		  AND wp.word_id NOT IN (
			  SELECT word_id FROM current_practice WHERE user_id = $2
		  )
		ORDER BY tp.position
		LIMIT $4
	`
	rows, err := s.db.QueryContext(ctx, query, day.Format(dayFormat), userID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pool words: %w", err)
	}
	defer rows.Close()

	var words []models.PracticeWord
	for rows.Next() {
		p, err := scanPracticeWord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pool word: %w", err)
		}
		words = append(words, *p)
	}
	return words, rows.Err()
}

// CountPoolDue counts the day's pool entries still due, excluding words
// queued in the current session.
func (s *Store) CountPoolDue(ctx context.Context, userID int64, now, day time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM word_practice wp
		JOIN today_practice tp ON tp.word_practice_id = wp.id AND tp.date = $1
		WHERE wp.user_id = $2
		  AND wp.next_date <= $3
		  AND wp.deleted = FALSE
		  AND wp.word_id NOT IN (
			  SELECT word_id FROM current_practice WHERE user_id = $2
		  )
	`
	var count int
	err := s.db.GetContext(ctx, &count, query, day.Format(dayFormat), userID, now)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to count due pool words: %w", err)
	}
	return count, nil
}
