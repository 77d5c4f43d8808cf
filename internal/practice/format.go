package practice

import (
	"fmt"
	"strings"

	"github.com/example/wordlearn/internal/spaced_repetition"
	"github.com/example/wordlearn/pkg/models"
)

// FormatStageTransition renders a stage change like
// "Learning (2) → Getting familiar (3)". Deleted words (nil new stage)
// and unchanged stages show just the old stage.
func FormatStageTransition(oldStage int, newStage *int) string {
	oldLabel := spaced_repetition.StageLabel(oldStage)

	if newStage == nil || *newStage == oldStage {
		return fmt.Sprintf("%s (%d)", oldLabel, oldStage)
	}

	newLabel := spaced_repetition.StageLabel(*newStage)
	return fmt.Sprintf("%s (%d) → %s (%d)", oldLabel, oldStage, newLabel, *newStage)
}

func formatWordEntry(r models.SessionWordResult) string {
	return fmt.Sprintf("• %s → %s: %s", r.WordSource, r.WordTarget, FormatStageTransition(r.OldStage, r.NewStage))
}

// FormatSessionSummary renders the end-of-session message: accuracy,
// per-word breakdown grouped by outcome, insights and the streak line.
func FormatSessionSummary(b SessionBreakdown, insights []Insight, streakDays int) string {
	lines := []string{"Practiced all words!"}

	if b.TotalCount > 0 {
		lines = append(lines, fmt.Sprintf("%s of words were guessed correctly", b.AccuracyText()))
	}

	sections := []struct {
		header string
		words  []models.SessionWordResult
	}{
		{"✅ Correct:", b.Correct},
		{"❌ Incorrect:", b.Incorrect},
		{"🗑️ Deleted:", b.Deleted},
	}
	for _, s := range sections {
		if len(s.words) == 0 {
			continue
		}
		lines = append(lines, "", s.header)
		for _, r := range s.words {
			lines = append(lines, formatWordEntry(r))
		}
	}

	if len(insights) > 0 {
		lines = append(lines, "", "💡 Practice Insights:")
		for _, in := range insights {
			lines = append(lines, fmt.Sprintf("• %s %s", in.Emoji, in.Text))
		}
	}

	if streakDays > 0 {
		lines = append(lines, FormatStreakLine(streakDays))
	}

	return strings.Join(lines, "\n")
}
