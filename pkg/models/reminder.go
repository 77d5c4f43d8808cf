package models

import "time"

// Reminder is a user's daily practice reminder: the time of day it fires
// and the precomputed next trigger timestamp.
type Reminder struct {
	UserID     int64     `json:"user_id" db:"user_id"`
	RemindTime string    `json:"remind_time" db:"remind_time"` // "HH:MM"
	NextRemind time.Time `json:"next_remind" db:"next_remind"`
}
