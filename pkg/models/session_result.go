package models

// Review outcomes recorded per word during a session.
const (
	ResultCorrect   = "correct"
	ResultIncorrect = "incorrect"
	ResultDeleted   = "deleted"
)

// SessionWordResult is the outcome of a single word within a practice
// session, kept until the end-of-session summary is rendered.
type SessionWordResult struct {
	UserID   int64  `json:"user_id" db:"user_id"`
	WordID   int64  `json:"word_id" db:"word_id"`
	Result   string `json:"result" db:"result"`
	OldStage int    `json:"old_stage" db:"old_stage"`
	// NewStage is nil for deleted words.
	NewStage   *int   `json:"new_stage" db:"new_stage"`
	WordSource string `json:"word_source" db:"word_source"`
	WordTarget string `json:"word_target" db:"word_target"`
}
