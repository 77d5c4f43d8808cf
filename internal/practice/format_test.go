package practice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/wordlearn/pkg/models"
)

func TestFormatStageTransition(t *testing.T) {
	assert.Equal(t, "Learning (2) → Getting familiar (3)", FormatStageTransition(2, stagePtr(3)))
	assert.Equal(t, "Familiar (4)", FormatStageTransition(4, nil))
	assert.Equal(t, "Confident (5)", FormatStageTransition(5, stagePtr(5)))
	assert.Equal(t, "Well known (6) → Know by heart (7)", FormatStageTransition(6, stagePtr(7)))
}

func TestFormatSessionSummary(t *testing.T) {
	b := SessionBreakdown{
		Correct: []models.SessionWordResult{
			{WordSource: "kat", WordTarget: "cat", OldStage: 1, NewStage: stagePtr(2)},
		},
		Incorrect: []models.SessionWordResult{
			{WordSource: "hond", WordTarget: "dog", OldStage: 3, NewStage: stagePtr(1)},
		},
		TotalCorrect: 1,
		TotalCount:   2,
	}
	insights := []Insight{{Emoji: "🎯", Text: "Nice!"}}

	text := FormatSessionSummary(b, insights, 7)

	assert.Contains(t, text, "Practiced all words!")
	assert.Contains(t, text, "1/2 of words were guessed correctly")
	assert.Contains(t, text, "✅ Correct:")
	assert.Contains(t, text, "• kat → cat: Just learned (1) → Learning (2)")
	assert.Contains(t, text, "❌ Incorrect:")
	assert.Contains(t, text, "• hond → dog: Getting familiar (3) → Just learned (1)")
	assert.NotContains(t, text, "🗑️ Deleted:")
	assert.Contains(t, text, "💡 Practice Insights:")
	assert.Contains(t, text, "• 🎯 Nice!")
	assert.Contains(t, text, "🔥 Streak: 7 days (Week Warrior)")
}

func TestFormatSessionSummaryEmpty(t *testing.T) {
	text := FormatSessionSummary(SessionBreakdown{}, nil, 0)
	assert.Equal(t, "Practiced all words!", text)
}
