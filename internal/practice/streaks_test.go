package practice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeStreakUpdateFirstActivity(t *testing.T) {
	today := day(2026, 8, 27)
	streak, active := ComputeStreakUpdate(nil, 0, today)
	assert.Equal(t, 1, streak)
	assert.Equal(t, today, active)
}

func TestComputeStreakUpdateSameDay(t *testing.T) {
	today := day(2026, 8, 27)
	streak, _ := ComputeStreakUpdate(&today, 5, today)
	assert.Equal(t, 5, streak)
}

func TestComputeStreakUpdateConsecutiveDay(t *testing.T) {
	yesterday := day(2026, 8, 26)
	streak, active := ComputeStreakUpdate(&yesterday, 5, day(2026, 8, 27))
	assert.Equal(t, 6, streak)
	assert.Equal(t, day(2026, 8, 27), active)
}

func TestComputeStreakUpdateConsecutiveDayFromZero(t *testing.T) {
	// A zero streak with yesterday's activity still counts yesterday.
	yesterday := day(2026, 8, 26)
	streak, _ := ComputeStreakUpdate(&yesterday, 0, day(2026, 8, 27))
	assert.Equal(t, 2, streak)
}

func TestComputeStreakUpdateGapResets(t *testing.T) {
	lastWeek := day(2026, 8, 20)
	streak, _ := ComputeStreakUpdate(&lastWeek, 30, day(2026, 8, 27))
	assert.Equal(t, 1, streak)
}

func TestComputeStreakUpdateFutureLastActive(t *testing.T) {
	tomorrow := day(2026, 8, 28)
	streak, _ := ComputeStreakUpdate(&tomorrow, 3, day(2026, 8, 27))
	assert.Equal(t, 3, streak)
}

func TestStreakLabel(t *testing.T) {
	assert.Equal(t, "Week Warrior", StreakLabel(7))
	assert.Equal(t, "Year Legend", StreakLabel(365))
	assert.Equal(t, "", StreakLabel(8))
}

func TestFormatStreakLine(t *testing.T) {
	assert.Equal(t, "🔥 Streak: 1 day", FormatStreakLine(1))
	assert.Equal(t, "🔥 Streak: 2 days", FormatStreakLine(2))
	assert.Equal(t, "🔥 Streak: 7 days (Week Warrior)", FormatStreakLine(7))
}
