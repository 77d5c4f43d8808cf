package practice

import (
	"fmt"
	"time"
)

// Milestone labels awarded at specific streak lengths.
var streakMilestones = map[int]string{
	3:   "Warm-Up Run",
	7:   "Week Warrior",
	14:  "Fortnight Force",
	21:  "Habit Locked",
	30:  "Month Master",
	40:  "Momentum Maker",
	60:  "Two-Month Titan",
	90:  "Seasoned Streak",
	120: "Quarter Champion",
	180: "Half-Year Hero",
	240: "Eight-Month Engine",
	300: "Three-Hundred Club",
	365: "Year Legend",
}

// ComputeStreakUpdate returns the new streak length and activity date
// given the previous state and today's date. Practicing on consecutive
// days extends the streak; a gap resets it to 1.
func ComputeStreakUpdate(lastActive *time.Time, currentStreak int, today time.Time) (int, time.Time) {
	if lastActive == nil {
		return 1, today
	}

	last := dateOf(*lastActive)
	day := dateOf(today)

	switch {
	case !last.Before(day): // same day, or clock skew into the future
		if currentStreak < 1 {
			return 1, today
		}
		return currentStreak, today
	case last.Equal(day.AddDate(0, 0, -1)):
		if currentStreak < 1 {
			currentStreak = 1
		}
		return currentStreak + 1, today
	default:
		return 1, today
	}
}

// StreakLabel returns the milestone label for a streak length, or "".
func StreakLabel(days int) string {
	return streakMilestones[days]
}

// FormatStreakLine renders the streak line for the session summary.
func FormatStreakLine(days int) string {
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	if label := StreakLabel(days); label != "" {
		return fmt.Sprintf("🔥 Streak: %d %s (%s)", days, unit, label)
	}
	return fmt.Sprintf("🔥 Streak: %d %s", days, unit)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
