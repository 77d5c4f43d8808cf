package models

import "time"

// Word is an immutable vocabulary pair from the shared dictionary.
// Target is the text shown during practice; Source is its translation.
type Word struct {
	ID        int64     `json:"id" db:"id"`
	Target    string    `json:"target" db:"target"`
	Source    string    `json:"source" db:"source"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
