package classify

import (
	"context"
	"strings"

	"github.com/vmalikov/docflow/internal/core/domain"
)

// mockRule mirrors the demo-mode classifier: keyword scoring with fixed
// high confidences so downstream routing behaves as with a real model.
type mockRule struct {
	category   string
	keywords   []string
	confidence float64
}

var mockRules = []mockRule{
	{"invoice", []string{"invoice", "bill", "payment", "amount due", "total", "tax", "subtotal", "payable"}, 0.92},
	{"contract", []string{"agreement", "contract", "terms and conditions", "whereas"}, 0.90},
	{"resume", []string{"experience", "education", "skills", "employment history"}, 0.89},
	{"report", []string{"report", "analysis", "summary", "finding", "conclusion", "investigation"}, 0.85},
	{"policy_document", []string{"policy", "procedure", "guideline", "circular", "standard operating"}, 0.88},
	{"legal_document", []string{"court", "legal", "attorney", "plaintiff", "defendant"}, 0.87},
}

const mockOtherConfidence = 0.75

// MockStrategy stands in for the LLM API in demo mode. It is only added to
// the chain when explicitly enabled in configuration.
type MockStrategy struct{}

func NewMockStrategy() *MockStrategy { return &MockStrategy{} }

func (s *MockStrategy) Method() domain.ClassifyMethod { return domain.MethodLLMMock }

func (s *MockStrategy) Attempt(_ context.Context, text string) (domain.ClassificationResult, error) {
	lower := strings.ToLower(text)

	bestIdx := -1
	bestScore := 0
	for i, rule := range mockRules {
		score := 0
		for _, kw := range rule.keywords {
			score += strings.Count(lower, kw)
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return domain.ClassificationResult{
			Category:   domain.CategoryOther,
			Confidence: mockOtherConfidence,
			Reason:     "demo mode: no keyword match",
		}, nil
	}
	rule := mockRules[bestIdx]
	return domain.ClassificationResult{
		Category:   rule.category,
		Confidence: rule.confidence,
		Reason:     "demo mode: keyword-based stand-in, not a real model",
	}, nil
}
