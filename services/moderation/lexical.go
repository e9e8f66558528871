package moderation

import (
	"regexp"
	"strings"
)

// Severity grades a lexical violation
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns the severity name for logging and reason codes
func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	}
	return "unknown"
}

// Verdict is the outcome of the lexical filter for one text value
type Verdict struct {
	Clean      bool
	Severity   Severity
	Violations []string
}

type lexicalRule struct {
	pattern  *regexp.Regexp
	label    string
	severity Severity
}

var lexicalRules = []lexicalRule{
	{regexp.MustCompile(`(?i)\b(damn|crap)\b`), "mild_profanity", SeverityLow},
	{regexp.MustCompile(`(?i)\b(idiot|moron|loser|pathetic)\b`), "insult", SeverityMedium},
	{regexp.MustCompile(`(?i)\b(stupid\s+(bitch|cow|pig))\b`), "targeted_insult", SeverityHigh},
	{regexp.MustCompile(`(?i)\bi\s+(hate|despise)\s+you\b`), "hostility", SeverityHigh},
	{regexp.MustCompile(`(?i)\b(kill|hurt)\s+(yourself|urself)\b`), "self_harm_incitement", SeverityCritical},
	{regexp.MustCompile(`(?i)\bi('?ll| will| am going to)\s+(kill|hurt|find)\s+you\b`), "threat", SeverityCritical},
	{regexp.MustCompile(`(?i)\bgo\s+die\b`), "threat", SeverityCritical},
}

// Filter runs the lexical word/phrase filter over a single text value. The
// reported severity is the highest across all matched rules.
func Filter(text string) Verdict {
	normalized := strings.ToLower(text)

	verdict := Verdict{Clean: true, Severity: SeverityNone}
	for _, rule := range lexicalRules {
		if rule.pattern.MatchString(normalized) {
			verdict.Clean = false
			verdict.Violations = append(verdict.Violations, rule.label)
			if rule.severity > verdict.Severity {
				verdict.Severity = rule.severity
			}
		}
	}
	return verdict
}
