package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/vmalikov/docflow/internal/core/domain"
)

// otherConfidence is reported when no keyword list matches at all.
const otherConfidence = 0.5

// CategoryRule scores one category by counting literal keyword occurrences.
type CategoryRule struct {
	Name       string
	Keywords   []string
	Weight     float64
	Confidence float64
}

// RuleStrategy is the terminal fallback: deterministic keyword scoring with
// fixed per-category confidence constants. It never fails.
type RuleStrategy struct {
	rules []CategoryRule
}

func NewRuleStrategy(rules []CategoryRule) *RuleStrategy {
	return &RuleStrategy{rules: rules}
}

func (s *RuleStrategy) Method() domain.ClassifyMethod { return domain.MethodRuleBased }

func (s *RuleStrategy) Attempt(_ context.Context, text string) (domain.ClassificationResult, error) {
	lower := strings.ToLower(text)

	bestIdx := -1
	bestScore := 0.0
	for i, rule := range s.rules {
		score := scoreKeywords(lower, rule.Keywords, rule.Weight)
		// Strict greater-than: the first category reaching the max score in
		// enumeration order wins ties.
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return domain.ClassificationResult{
			Category:   domain.CategoryOther,
			Confidence: otherConfidence,
			Reason:     "no category keywords matched",
		}, nil
	}

	rule := s.rules[bestIdx]
	return domain.ClassificationResult{
		Category:   rule.Name,
		Confidence: rule.Confidence,
		Reason:     fmt.Sprintf("matched %s keywords (score %.1f)", rule.Name, bestScore),
	}, nil
}

func scoreKeywords(lowerText string, keywords []string, weight float64) float64 {
	if weight <= 0 {
		weight = 1.0
	}
	score := 0.0
	for _, kw := range keywords {
		score += float64(strings.Count(lowerText, kw)) * weight
	}
	return score
}
