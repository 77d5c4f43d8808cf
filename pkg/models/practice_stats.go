package models

import "fmt"

// PracticeStats holds the running correct/total counters for a user's
// current practice session.
type PracticeStats struct {
	UserID  int64 `json:"user_id" db:"user_id"`
	Correct int   `json:"correct" db:"correct"`
	Total   int   `json:"total" db:"total"`
}

// AccuracyText returns the "correct/total" summary string.
func (s PracticeStats) AccuracyText() string {
	return fmt.Sprintf("%d/%d", s.Correct, s.Total)
}
