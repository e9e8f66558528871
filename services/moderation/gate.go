package moderation

import (
	"context"
	"fmt"
	"sort"

	"github.com/stridelab/stride-api/services"
	"go.uber.org/zap"
)

// Policy selects the blocking threshold for a review
type Policy int

const (
	// PolicyStandard blocks on high/critical lexical severity or a
	// classifier block. Used for stored mutations where post-hoc moderation
	// can still act.
	PolicyStandard Policy = iota
	// PolicyRealtime blocks on any non-zero severity. Live chat fans out to
	// viewers immediately, so there is no post-hoc window.
	PolicyRealtime
)

// Gate reduces per-field verdicts to one pipeline-level pass/block decision
type Gate struct {
	blockScore float64
	logger     *zap.Logger
}

// NewGate creates a new moderation Gate
func NewGate(blockScore float64, logger *zap.Logger) *Gate {
	return &Gate{
		blockScore: blockScore,
		logger:     logger,
	}
}

// Review runs every submitted text value through the lexical filter and the
// toxicity classifier. If either check blocks any value, the whole mutation is
// rejected; there is no partial acceptance at this stage.
//
// Columns are reviewed in sorted order so the reported reason code is stable
// when more than one field would block.
func (g *Gate) Review(ctx context.Context, texts map[string]string, policy Policy) error {
	columns := make([]string, 0, len(texts))
	for column := range texts {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	for _, column := range columns {
		text := texts[column]
		if text == "" {
			continue
		}

		verdict := Filter(text)
		if g.lexicalBlocks(verdict, policy) {
			g.logger.Info("content blocked by lexical filter",
				zap.String("field", column),
				zap.String("severity", verdict.Severity.String()),
				zap.Strings("violations", verdict.Violations))
			return services.NewDomainError(services.ErrorTypeModeration,
				"Content rejected by moderation", nil).
				WithDetail("reasonCode", fmt.Sprintf("lexical_%s", verdict.Severity))
		}

		result := Classify(text, g.classifierThreshold(policy))
		if result.Action == ActionBlock {
			g.logger.Info("content blocked by toxicity classifier",
				zap.String("field", column),
				zap.Float64("score", result.MaxScore),
				zap.String("category", result.TopCategory))
			return services.NewDomainError(services.ErrorTypeModeration,
				"Content rejected by moderation", nil).
				WithDetail("reasonCode", fmt.Sprintf("toxicity_%s", result.TopCategory))
		}
	}
	return nil
}

// lexicalBlocks applies the per-policy severity threshold
func (g *Gate) lexicalBlocks(v Verdict, policy Policy) bool {
	if v.Clean {
		return false
	}
	if policy == PolicyRealtime {
		return v.Severity > SeverityNone
	}
	return v.Severity >= SeverityHigh
}

// classifierThreshold lowers the blocking score for realtime text
func (g *Gate) classifierThreshold(policy Policy) float64 {
	if policy == PolicyRealtime {
		// Any measurable toxicity blocks live text.
		return 0.05
	}
	return g.blockScore
}
