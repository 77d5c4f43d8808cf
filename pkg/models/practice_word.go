package models

import "time"

// WordProgress tracks one user's learning state for a single word.
// Stage drives the exponential review interval; rows are soft-deleted,
// never removed.
type WordProgress struct {
	ID                  int64     `json:"id" db:"id"`
	UserID              int64     `json:"user_id" db:"user_id"`
	WordID              int64     `json:"word_id" db:"word_id"`
	Stage               int       `json:"stage" db:"stage"`
	NextDate            time.Time `json:"next_date" db:"next_date"`
	Deleted             bool      `json:"deleted" db:"deleted"`
	ConsecutiveFailures int       `json:"consecutive_failures" db:"consecutive_failures"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// PracticeWord is a progress row joined with its dictionary word,
// the unit the session engine works with.
type PracticeWord struct {
	WordProgress
	Word Word `json:"word"`
}
