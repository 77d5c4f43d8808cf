package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordlearn/internal/practice"
	"github.com/example/wordlearn/pkg/models"
)

// StartSession enqueues words into the user's active session in the
// given order.
func (s *Store) StartSession(ctx context.Context, userID int64, wordIDs []int64) error {
	if len(wordIDs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO current_practice (user_id, word_id, position)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, word_id) DO NOTHING
	`
	for i, wordID := range wordIDs {
		if _, err := tx.ExecContext(ctx, query, userID, wordID, i); err != nil {
			return fmt.Errorf("failed to enqueue word %d: %w", wordID, err)
		}
	}
	return tx.Commit()
}

// NextSessionWord returns the head of the active session, or nil when the
// session is empty. Soft-deleted words never surface.
func (s *Store) NextSessionWord(ctx context.Context, userID int64) (*models.PracticeWord, error) {
	query := `
		SELECT ` + practiceWordColumns + `
		FROM current_practice cp
		JOIN word_practice wp ON wp.user_id = cp.user_id AND wp.word_id = cp.word_id
		JOIN words w ON w.id = wp.word_id
		WHERE cp.user_id = $1 AND wp.deleted = FALSE
		ORDER BY cp.position
		LIMIT 1
	`
	p, err := scanPracticeWord(s.db.QueryRowContext(ctx, query, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session head: %w", err)
	}
	return p, nil
}

// ClearSession empties the user's active session queue.
func (s *Store) ClearSession(ctx context.Context, userID int64) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM current_practice WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// ApplyReview applies one judged review in a single transaction: progress
// update, per-word result, stats counters, failure bookkeeping and the
// queue pop. A crash leaves either the whole judgement or none of it.
func (s *Store) ApplyReview(ctx context.Context, upd practice.ReviewUpdate) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if upd.MarkDeleted {
		_, err = tx.ExecContext(ctx, `
			UPDATE word_practice
			SET deleted = TRUE, updated_at = CURRENT_TIMESTAMP
			WHERE user_id = $1 AND word_id = $2`,
			upd.UserID, upd.WordID)
	} else {
		_, err = tx.ExecContext(ctx, `
			UPDATE word_practice
			SET stage = $3, next_date = $4, updated_at = CURRENT_TIMESTAMP
			WHERE user_id = $1 AND word_id = $2`,
			upd.UserID, upd.WordID, *upd.NewStage, upd.NextDate)
	}
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}

	if upd.ResetFailures {
		_, err = tx.ExecContext(ctx, `
			UPDATE word_practice SET consecutive_failures = 0
			WHERE user_id = $1 AND word_id = $2`,
			upd.UserID, upd.WordID)
	} else if upd.IncrementFailures {
		_, err = tx.ExecContext(ctx, `
			UPDATE word_practice SET consecutive_failures = consecutive_failures + 1
			WHERE user_id = $1 AND word_id = $2`,
			upd.UserID, upd.WordID)
	}
	if err != nil {
		return fmt.Errorf("failed to update failure counter: %w", err)
	}

	var newStage sql.NullInt64
	if upd.NewStage != nil {
		newStage = sql.NullInt64{Int64: int64(*upd.NewStage), Valid: true}
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO session_word_results
			(user_id, word_id, result, old_stage, new_stage, word_source, word_target)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, word_id)
		DO UPDATE SET result = $3, old_stage = $4, new_stage = $5,
		              word_source = $6, word_target = $7`,
		upd.UserID, upd.WordID, upd.Result, upd.OldStage, newStage,
		upd.WordSource, upd.WordTarget)
	if err != nil {
		return fmt.Errorf("failed to save word result: %w", err)
	}

	if upd.TotalDelta > 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO current_practice_stats (user_id, correct, total)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id)
			DO UPDATE SET correct = current_practice_stats.correct + $2,
			              total = current_practice_stats.total + $3`,
			upd.UserID, upd.CorrectDelta, upd.TotalDelta)
		if err != nil {
			return fmt.Errorf("failed to update stats: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, `
		DELETE FROM current_practice WHERE user_id = $1 AND word_id = $2`,
		upd.UserID, upd.WordID); err != nil {
		return fmt.Errorf("failed to pop session word: %w", err)
	}

	return tx.Commit()
}

// SessionStats returns the running counters, zeroed when absent.
func (s *Store) SessionStats(ctx context.Context, userID int64) (models.PracticeStats, error) {
	stats := models.PracticeStats{UserID: userID}
	err := s.db.GetContext(ctx, &stats, `
		SELECT user_id, correct, total FROM current_practice_stats
		WHERE user_id = $1`, userID)
	if err == sql.ErrNoRows {
		return models.PracticeStats{UserID: userID}, nil
	}
	if err != nil {
		return models.PracticeStats{}, fmt.Errorf("failed to read session stats: %w", err)
	}
	return stats, nil
}

// ResetSessionStats zeroes the counters.
func (s *Store) ResetSessionStats(ctx context.Context, userID int64) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM current_practice_stats WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("failed to reset session stats: %w", err)
	}
	return nil
}

// SessionResults returns the per-word outcomes recorded this session.
func (s *Store) SessionResults(ctx context.Context, userID int64) ([]models.SessionWordResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, word_id, result, old_stage, new_stage, word_source, word_target
		FROM session_word_results
		WHERE user_id = $1
		ORDER BY word_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read session results: %w", err)
	}
	defer rows.Close()

	var results []models.SessionWordResult
	for rows.Next() {
		var r models.SessionWordResult
		var newStage sql.NullInt64
		if err := rows.Scan(&r.UserID, &r.WordID, &r.Result, &r.OldStage,
			&newStage, &r.WordSource, &r.WordTarget); err != nil {
			return nil, fmt.Errorf("failed to scan session result: %w", err)
		}
		if newStage.Valid {
			stage := int(newStage.Int64)
			r.NewStage = &stage
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// ClearSessionResults discards the per-word outcomes.
func (s *Store) ClearSessionResults(ctx context.Context, userID int64) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM session_word_results WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("failed to clear session results: %w", err)
	}
	return nil
}

// ConsecutiveFailures returns the failure run per word id.
func (s *Store) ConsecutiveFailures(ctx context.Context, userID int64, wordIDs []int64) (map[int64]int, error) {
	failures := make(map[int64]int)
	if len(wordIDs) == 0 {
		return failures, nil
	}

	query, args, err := sqlx.In(`
		SELECT word_id, consecutive_failures FROM word_practice
		WHERE user_id = ? AND word_id IN (?)`, userID, wordIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build failures query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read failure counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var wordID int64
		var count int
		if err := rows.Scan(&wordID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan failure count: %w", err)
		}
		failures[wordID] = count
	}
	return failures, rows.Err()
}

// CountConfidentWords counts non-deleted words at stage 5 and above.
func (s *Store) CountConfidentWords(ctx context.Context, userID int64) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM word_practice
		WHERE user_id = $1 AND stage >= 5 AND deleted = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count confident words: %w", err)
	}
	return count, nil
}
