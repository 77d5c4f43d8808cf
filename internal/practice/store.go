package practice

import (
	"context"
	"time"

	"github.com/example/wordlearn/pkg/models"
)

// ReviewUpdate is the full effect of one judged review. The store must
// apply it atomically: a crash mid-judgement may not duplicate or lose
// stage progress.
type ReviewUpdate struct {
	UserID int64
	WordID int64

	// One of models.ResultCorrect/ResultIncorrect/ResultDeleted.
	Result   string
	OldStage int
	// NewStage and NextDate are unset for deletions.
	NewStage *int
	NextDate time.Time

	WordSource string
	WordTarget string

	// Stats counter deltas for the current session.
	CorrectDelta int
	TotalDelta   int

	// Consecutive-failure bookkeeping on the progress row.
	ResetFailures     bool
	IncrementFailures bool

	// MarkDeleted soft-deletes the progress row.
	MarkDeleted bool
}

// Store is the persistence interface the engine drives. The SQL
// implementation lives in internal/database; tests use an in-memory fake.
type Store interface {
	// Dictionary.
	CreateWord(ctx context.Context, target, source string) (models.Word, error)
	SampleUnseenWords(ctx context.Context, userID int64, limit int) ([]models.Word, error)

	// Per-user progress and skip list.
	AddToPractice(ctx context.Context, userID int64, wordIDs []int64, due time.Time) error
	AddToSkiplist(ctx context.Context, userID int64, wordIDs []int64) error

	// Daily pool. A pool is keyed by (user, day) and immutable once
	// created; CreateTodayPool must be idempotent for existing members.
	TodayPool(ctx context.Context, userID int64, day time.Time) ([]int64, error)
	CreateTodayPool(ctx context.Context, userID int64, now, day time.Time, limit int) ([]int64, error)
	PoolDueWords(ctx context.Context, userID int64, now, day time.Time, limit int) ([]models.PracticeWord, error)
	CountPoolDue(ctx context.Context, userID int64, now, day time.Time) (int, error)

	// Active session queue.
	StartSession(ctx context.Context, userID int64, wordIDs []int64) error
	NextSessionWord(ctx context.Context, userID int64) (*models.PracticeWord, error)
	ClearSession(ctx context.Context, userID int64) error

	// Judgement, applied in a single transaction.
	ApplyReview(ctx context.Context, upd ReviewUpdate) error

	// Session stats and per-word results.
	SessionStats(ctx context.Context, userID int64) (models.PracticeStats, error)
	ResetSessionStats(ctx context.Context, userID int64) error
	SessionResults(ctx context.Context, userID int64) ([]models.SessionWordResult, error)
	ClearSessionResults(ctx context.Context, userID int64) error

	// Inputs for end-of-session insights and streaks.
	ConsecutiveFailures(ctx context.Context, userID int64, wordIDs []int64) (map[int64]int, error)
	CountConfidentWords(ctx context.Context, userID int64) (int, error)
	Streak(ctx context.Context, userID int64) (current int, lastActive *time.Time, err error)
	SetStreak(ctx context.Context, userID int64, streak int, lastActive time.Time) error

	// Reminders.
	SetReminder(ctx context.Context, userID int64, remindTime string, next time.Time) error
}
