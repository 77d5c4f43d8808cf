// Package spaced_repetition implements the review interval algorithm.
//
// The interval between reviews grows exponentially with the word's stage:
//
//	stage 0:      same day
//	stage 1:      1 day
//	stage N > 1:  2^(N-1) days, plus a random extra day
//
// The random component spreads out words learned on the same day so they
// stop coming due together.
package spaced_repetition

import (
	"math/rand"
	"time"
)

// MaxStage caps the exponential growth.
const MaxStage = 33

// DaysUntilReview returns the number of days until the next review for a
// word at the given stage. Stages above MaxStage clamp. The rand source is
// injected so schedules are reproducible in tests.
func DaysUntilReview(stage int, rng *rand.Rand) int {
	if stage > MaxStage {
		stage = MaxStage
	}
	if stage <= 0 {
		return 0
	}

	days := 1 << (stage - 1)
	if stage > 1 {
		days += rng.Intn(2)
	}
	return days
}

// NextReviewDate returns the next review timestamp: midnight of the base
// date plus the stage's interval.
func NextReviewDate(base time.Time, stage int, rng *rand.Rand) time.Time {
	days := DaysUntilReview(stage, rng)
	y, m, d := base.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, base.Location())
	return midnight.AddDate(0, 0, days)
}

// StageAfterCorrect increments the stage, capped at MaxStage.
func StageAfterCorrect(stage int) int {
	if stage+1 > MaxStage {
		return MaxStage
	}
	return stage + 1
}

// StageAfterIncorrect resets progress. The result is 1 rather than 0, so a
// forgotten word comes back tomorrow instead of later the same day.
func StageAfterIncorrect() int {
	return 1
}
