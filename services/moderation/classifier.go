package moderation

import "regexp"

// ClassifierAction is the classifier's pass/block decision
type ClassifierAction string

const (
	ActionPass  ClassifierAction = "pass"
	ActionBlock ClassifierAction = "block"
)

// ClassifierResult is the statistical toxicity score for one text value
type ClassifierResult struct {
	Action      ClassifierAction
	MaxScore    float64
	TopCategory string
}

type classifierSignal struct {
	pattern  *regexp.Regexp
	category string
	weight   float64
}

// Signals approximate a hosted toxicity model: each matched pattern
// contributes its weight to the category score, capped at 1.0.
var classifierSignals = []classifierSignal{
	{regexp.MustCompile(`(?i)\b(hate|despise)\b`), "hostility", 0.35},
	{regexp.MustCompile(`(?i)\b(worthless|disgusting|subhuman)\b`), "dehumanizing", 0.55},
	{regexp.MustCompile(`(?i)\b(idiot|moron|loser)\b`), "insult", 0.4},
	{regexp.MustCompile(`(?i)\b(kill|hurt|beat)\s+(you|them|him|her)\b`), "threat", 0.9},
	{regexp.MustCompile(`(?i)\byou\s+(all\s+)?deserve\s+to\s+(die|suffer)\b`), "threat", 0.95},
	{regexp.MustCompile(`(?i)\b(shut\s+up)\b`), "hostility", 0.25},
	{regexp.MustCompile(`[A-Z]{8,}`), "shouting", 0.1},
	{regexp.MustCompile(`(.)\1{5,}`), "spam", 0.1},
}

// Classify scores a single text value and blocks at or above blockScore.
func Classify(text string, blockScore float64) ClassifierResult {
	scores := make(map[string]float64)
	for _, sig := range classifierSignals {
		if sig.pattern.MatchString(text) {
			scores[sig.category] += sig.weight
			if scores[sig.category] > 1.0 {
				scores[sig.category] = 1.0
			}
		}
	}

	result := ClassifierResult{Action: ActionPass}
	for category, score := range scores {
		if score > result.MaxScore {
			result.MaxScore = score
			result.TopCategory = category
		}
	}
	if result.MaxScore >= blockScore {
		result.Action = ActionBlock
	}
	return result
}
