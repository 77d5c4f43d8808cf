package spaced_repetition

// Human-readable maturity labels shown in session summaries.
var stageLabels = map[int]string{
	0: "Unknown",
	1: "Just learned",
	2: "Learning",
	3: "Getting familiar",
	4: "Familiar",
	5: "Confident",
	6: "Well known",
}

const (
	maxLabeledStage  = 7
	knowByHeartLabel = "Know by heart"
)

// StageLabel returns the label for a stage, "Know by heart" for anything
// at stage 7 or above.
func StageLabel(stage int) string {
	if stage >= maxLabeledStage {
		return knowByHeartLabel
	}
	if label, ok := stageLabels[stage]; ok {
		return label
	}
	return knowByHeartLabel
}
