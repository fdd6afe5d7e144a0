package classify

import (
	"context"
	"fmt"

	"github.com/vmalikov/docflow/internal/core/domain"
	"github.com/vmalikov/docflow/internal/infrastructure/textproc"
)

// maxExcerptLen bounds the text sent to the external classification API.
const maxExcerptLen = 3000

// LLMClassifier is the external classification API: raw text plus the
// category enumeration in, structured result out.
type LLMClassifier interface {
	ClassifyText(ctx context.Context, text string, categories []string) (domain.ClassificationResult, error)
}

// LLMStrategy delegates to a configured LLM endpoint. Any transport or
// parse failure makes the strategy unavailable; nothing propagates.
type LLMStrategy struct {
	client     LLMClassifier
	categories []string
}

func NewLLMStrategy(client LLMClassifier, categories []string) *LLMStrategy {
	return &LLMStrategy{client: client, categories: categories}
}

func (s *LLMStrategy) Method() domain.ClassifyMethod { return domain.MethodLLMAPI }

func (s *LLMStrategy) Attempt(ctx context.Context, text string) (domain.ClassificationResult, error) {
	if s.client == nil {
		return domain.ClassificationResult{}, domain.WrapError(domain.ErrUnavailable, "llm classify", fmt.Errorf("not configured"))
	}

	excerpt := textproc.Truncate(text, maxExcerptLen)

	result, err := s.client.ClassifyText(ctx, excerpt, s.categories)
	if err != nil {
		return domain.ClassificationResult{}, domain.WrapError(domain.ErrUnavailable, "llm classify", err)
	}

	result.Confidence = clamp01(result.Confidence)
	if !s.knownCategory(result.Category) {
		result.Reason = fmt.Sprintf("model returned unknown category %q", result.Category)
		result.Category = domain.CategoryOther
	}
	return result, nil
}

func (s *LLMStrategy) knownCategory(category string) bool {
	for _, c := range s.categories {
		if c == category {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
