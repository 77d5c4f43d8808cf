package practice

// ActionKind identifies a button the transport should render. The engine
// never formats transport-specific callback encodings; the adapter maps
// these to whatever its chat platform needs.
type ActionKind int

const (
	ActionReveal ActionKind = iota
	ActionJudgeCorrect
	ActionJudgeIncorrect
	ActionJudgeDelete
	ActionPractice
	ActionLearn
	ActionSkip
)

// Action is one affordance offered to the user.
type Action struct {
	Kind   ActionKind
	Label  string
	WordID int64 // set for word-scoped actions
	Count  int   // set for ActionPractice: words available
}

// Response is the transport-neutral payload returned by every engine
// handler: text to show plus rows of actions.
type Response struct {
	Text    string
	Actions [][]Action
}

// Outcome is the user's recall judgement for the current word.
type Outcome int

const (
	OutcomeCorrect Outcome = iota
	OutcomeIncorrect
	OutcomeDelete
)

func revealRow(wordID int64) [][]Action {
	return [][]Action{{
		{Kind: ActionReveal, Label: "Reveal", WordID: wordID},
	}}
}

func judgeRow(wordID int64) [][]Action {
	return [][]Action{{
		{Kind: ActionJudgeCorrect, Label: "✅ Done", WordID: wordID},
		{Kind: ActionJudgeIncorrect, Label: "❌ Incorrect", WordID: wordID},
		{Kind: ActionJudgeDelete, Label: "🗑️ Delete", WordID: wordID},
	}}
}

func learnSkipRow(wordID int64) [][]Action {
	return [][]Action{{
		{Kind: ActionLearn, Label: "Learn", WordID: wordID},
		{Kind: ActionSkip, Label: "Skip", WordID: wordID},
	}}
}

func practiceRow(label string, count int) [][]Action {
	return [][]Action{{
		{Kind: ActionPractice, Label: label, Count: count},
	}}
}
