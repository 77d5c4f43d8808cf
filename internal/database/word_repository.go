package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/wordlearn/pkg/models"
)

// CreateWord inserts a dictionary pair and returns it with its id.
func (s *Store) CreateWord(ctx context.Context, target, source string) (models.Word, error) {
	w := models.Word{Target: target, Source: source}

	if s.postgres() {
		err := s.db.QueryRowContext(ctx,
			"INSERT INTO words (target, source) VALUES ($1, $2) RETURNING id",
			target, source,
		).Scan(&w.ID)
		if err != nil {
			return models.Word{}, fmt.Errorf("failed to create word: %w", err)
		}
		return w, nil
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO words (target, source) VALUES ($1, $2)", target, source)
	if err != nil {
		return models.Word{}, fmt.Errorf("failed to create word: %w", err)
	}
	w.ID, err = res.LastInsertId()
	if err != nil {
		return models.Word{}, fmt.Errorf("failed to read word id: %w", err)
	}
	return w, nil
}

// GetWord returns a dictionary word by id.
func (s *Store) GetWord(ctx context.Context, id int64) (models.Word, error) {
	var w models.Word
	err := s.db.GetContext(ctx, &w,
		"SELECT id, target, source FROM words WHERE id = $1", id)
	if err != nil {
		return models.Word{}, fmt.Errorf("failed to get word %d: %w", id, err)
	}
	return w, nil
}

// WordExists reports whether the exact pair is already in the
// dictionary.
func (s *Store) WordExists(ctx context.Context, target, source string) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM words WHERE target = $1 AND source = $2",
		target, source)
	if err != nil {
		return false, fmt.Errorf("failed to check word existence: %w", err)
	}
	return count > 0, nil
}

// SampleUnseenWords returns up to limit random dictionary words the user
// has neither learned nor skipped.
func (s *Store) SampleUnseenWords(ctx context.Context, userID int64, limit int) ([]models.Word, error) {
	query := `
		SELECT w.id, w.target, w.source
		FROM words w
		WHERE w.id NOT IN (
			SELECT word_id FROM word_practice WHERE user_id = $1
		)
		AND w.id NOT IN (
			SELECT word_id FROM word_skiplist WHERE user_id = $1
		)
		ORDER BY RANDOM()
		LIMIT $2
	`
	var words []models.Word
	if err := s.db.SelectContext(ctx, &words, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to sample unseen words: %w", err)
	}
	return words, nil
}

// AddToPractice creates progress rows at stage 0 for the given words.
// Existing rows are left untouched.
func (s *Store) AddToPractice(ctx context.Context, userID int64, wordIDs []int64, due time.Time) error {
	if len(wordIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO word_practice (user_id, word_id, stage, next_date)
		VALUES ($1, $2, 0, $3)
		ON CONFLICT (user_id, word_id) DO NOTHING
	`
	for _, wordID := range wordIDs {
		if _, err := s.db.ExecContext(ctx, query, userID, wordID, due); err != nil {
			return fmt.Errorf("failed to add word %d to practice: %w", wordID, err)
		}
	}
	return nil
}

// AddToSkiplist permanently excludes words from future suggestion.
func (s *Store) AddToSkiplist(ctx context.Context, userID int64, wordIDs []int64) error {
	if len(wordIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO word_skiplist (user_id, word_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, word_id) DO NOTHING
	`
	for _, wordID := range wordIDs {
		if _, err := s.db.ExecContext(ctx, query, userID, wordID); err != nil {
			return fmt.Errorf("failed to skiplist word %d: %w", wordID, err)
		}
	}
	return nil
}
