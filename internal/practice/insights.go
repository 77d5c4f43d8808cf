package practice

import (
	"fmt"

	"github.com/example/wordlearn/pkg/models"
)

// Insight is one highlight shown under the session summary.
type Insight struct {
	Emoji string
	Text  string
}

const (
	// Stage at which a word counts as "Know by heart".
	knowByHeartStage = 7
	// Stage at which a word counts toward the confident-words total.
	confidentStage = 5
	// Failures in a row before a word is called out as struggling.
	minConsecutiveFailures = 2
)

// Confident-word totals that earn a milestone insight.
var confidentMilestones = []int{10, 25, 50, 100, 200, 300, 400, 500, 750, 1000, 1500, 2000, 3000, 5000}

// SessionBreakdown groups a finished session's per-word results for the
// summary and insight generation.
type SessionBreakdown struct {
	Correct   []models.SessionWordResult
	Incorrect []models.SessionWordResult
	Deleted   []models.SessionWordResult

	TotalCorrect int
	TotalCount   int
}

// NewSessionBreakdown splits raw results by outcome and attaches the
// session counters.
func NewSessionBreakdown(results []models.SessionWordResult, stats models.PracticeStats) SessionBreakdown {
	b := SessionBreakdown{
		TotalCorrect: stats.Correct,
		TotalCount:   stats.Total,
	}
	for _, r := range results {
		switch r.Result {
		case models.ResultCorrect:
			b.Correct = append(b.Correct, r)
		case models.ResultIncorrect:
			b.Incorrect = append(b.Incorrect, r)
		case models.ResultDeleted:
			b.Deleted = append(b.Deleted, r)
		}
	}
	return b
}

// AccuracyText returns the "correct/total" summary string.
func (b SessionBreakdown) AccuracyText() string {
	return fmt.Sprintf("%d/%d", b.TotalCorrect, b.TotalCount)
}

// NewlyConfident counts words that crossed the confident threshold in
// this session.
func (b SessionBreakdown) NewlyConfident() int {
	n := 0
	for _, r := range b.Correct {
		if r.OldStage < confidentStage && r.NewStage != nil && *r.NewStage >= confidentStage {
			n++
		}
	}
	return n
}

// GenerateInsights builds the insight list for a finished session.
// consecutiveFailures maps word id to its failure run; confidentCount and
// previousConfidentCount bracket this session's confident-word total.
func GenerateInsights(
	b SessionBreakdown,
	consecutiveFailures map[int64]int,
	confidentCount int,
	previousConfidentCount int,
) []Insight {
	var insights []Insight

	if b.TotalCount > 0 && b.TotalCorrect == b.TotalCount {
		insights = append(insights, Insight{
			Emoji: "🎯",
			Text:  fmt.Sprintf("Perfect round! %d/%d!", b.TotalCorrect, b.TotalCount),
		})
	}

	for _, r := range b.Correct {
		if r.NewStage != nil && *r.NewStage >= knowByHeartStage && r.OldStage < knowByHeartStage {
			insights = append(insights, Insight{
				Emoji: "⭐",
				Text:  fmt.Sprintf("'%s' is now Know by heart!", r.WordSource),
			})
		}
	}

	for _, r := range b.Incorrect {
		if consecutiveFailures[r.WordID] >= minConsecutiveFailures {
			insights = append(insights, Insight{
				Emoji: "💡",
				Text:  fmt.Sprintf("'%s' isn't sticking yet", r.WordSource),
			})
		}
	}

	for _, milestone := range confidentMilestones {
		if previousConfidentCount < milestone && milestone <= confidentCount {
			insights = append(insights, Insight{
				Emoji: "🏆",
				Text:  fmt.Sprintf("You now have %d words at Confident level or above!", milestone),
			})
			break
		}
	}

	return insights
}
