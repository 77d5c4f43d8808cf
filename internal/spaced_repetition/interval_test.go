package spaced_repetition

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStageAfterCorrect(t *testing.T) {
	for stage := 0; stage < MaxStage; stage++ {
		assert.Equal(t, stage+1, StageAfterCorrect(stage))
	}

	// Clamps at the maximum, including out-of-range inputs.
	assert.Equal(t, MaxStage, StageAfterCorrect(MaxStage))
	assert.Equal(t, MaxStage, StageAfterCorrect(MaxStage+10))
}

func TestStageAfterIncorrect(t *testing.T) {
	assert.Equal(t, 1, StageAfterIncorrect())
}

func TestDaysUntilReviewDeterministicStages(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Equal(t, 0, DaysUntilReview(0, rng))
	assert.Equal(t, 0, DaysUntilReview(-1, rng))

	// Stage 1 has no jitter.
	for i := 0; i < 50; i++ {
		assert.Equal(t, 1, DaysUntilReview(1, rng))
	}
}

func TestDaysUntilReviewJitterBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for stage := 2; stage <= MaxStage; stage++ {
		base := 1 << (stage - 1)
		for i := 0; i < 20; i++ {
			days := DaysUntilReview(stage, rng)
			assert.GreaterOrEqual(t, days, base, "stage %d", stage)
			assert.LessOrEqual(t, days, base+1, "stage %d", stage)
		}
	}
}

func TestDaysUntilReviewClampsAboveMax(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := 1 << (MaxStage - 1)

	for i := 0; i < 20; i++ {
		days := DaysUntilReview(MaxStage+5, rng)
		assert.GreaterOrEqual(t, days, base)
		assert.LessOrEqual(t, days, base+1)
	}
}

func TestNextReviewDate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	base := time.Date(2026, 8, 27, 15, 30, 45, 0, time.UTC)

	next := NextReviewDate(base, 1, rng)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), next)

	// Stage 0 reviews the same day, at midnight.
	next = NextReviewDate(base, 0, rng)
	assert.Equal(t, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), next)
}

func TestStageLabel(t *testing.T) {
	assert.Equal(t, "Unknown", StageLabel(0))
	assert.Equal(t, "Just learned", StageLabel(1))
	assert.Equal(t, "Confident", StageLabel(5))
	assert.Equal(t, "Well known", StageLabel(6))
	assert.Equal(t, "Know by heart", StageLabel(7))
	assert.Equal(t, "Know by heart", StageLabel(33))
}
