// Package classify implements the multi-strategy classification engine:
// an ordered fallback chain where each strategy either produces a result
// or signals unavailability and the next one is tried. The rule-based
// strategy is terminal, so the engine always produces a result.
package classify

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/vmalikov/docflow/internal/core/domain"
)

// MinTextLen is the minimum input length; shorter inputs are reported as
// "other" with zero confidence without invoking any strategy.
const MinTextLen = 10

// Strategy is one interchangeable classification algorithm. Attempt returns
// domain.ErrUnavailable (or any other error, treated the same) to hand over
// to the next strategy in the chain.
type Strategy interface {
	Method() domain.ClassifyMethod
	Attempt(ctx context.Context, text string) (domain.ClassificationResult, error)
}

type Engine struct {
	strategies []Strategy
	logger     *slog.Logger
}

func NewEngine(logger *slog.Logger, strategies ...Strategy) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{strategies: strategies, logger: logger}
}

// Classify runs the fallback chain. It never returns an error for bad
// input: short text and exhausted chains both yield the "other" category.
func (e *Engine) Classify(ctx context.Context, text string) (domain.ClassificationResult, error) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < MinTextLen {
		return domain.ClassificationResult{
			Category:   domain.CategoryOther,
			Confidence: 0.0,
			Reason:     "text too short for classification",
		}, nil
	}

	for _, strategy := range e.strategies {
		result, err := strategy.Attempt(ctx, trimmed)
		if err != nil {
			e.logger.Warn("classification strategy unavailable",
				"method", string(strategy.Method()),
				"error", err,
			)
			continue
		}
		result.Method = strategy.Method()
		return result, nil
	}

	return domain.ClassificationResult{
		Category:   domain.CategoryOther,
		Confidence: 0.0,
		Reason:     "no classification strategy available",
	}, nil
}
