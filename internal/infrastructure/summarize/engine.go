// Package summarize implements the multi-strategy summarization engine.
// Strategy selection is either explicit or automatic by text length; the
// graph and abstractive strategies fall back to extractive, so the engine
// always returns a non-empty summary for non-empty input.
package summarize

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/vmalikov/docflow/internal/core/domain"
	"github.com/vmalikov/docflow/internal/core/ports"
	"github.com/vmalikov/docflow/internal/infrastructure/textproc"
)

const (
	// MinTextLen mirrors the classification engine: shorter input is
	// returned unchanged, flagged as too short.
	MinTextLen = 10

	autoAbstractiveWords = 500
	autoGraphWords       = 100

	defaultTopSentences = 3
)

// StrategyAuto selects a strategy from the text length and the available
// models; the other names request one strategy explicitly.
const (
	StrategyAuto = "auto"
)

type Engine struct {
	topSentences int
	generator    ports.TextGenerator
	logger       *slog.Logger
}

// NewEngine builds the engine. A nil generator disables the abstractive
// strategy; auto-selection then degrades to graph/extractive.
func NewEngine(logger *slog.Logger, topSentences int, generator ports.TextGenerator) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if topSentences <= 0 {
		topSentences = defaultTopSentences
	}
	return &Engine{topSentences: topSentences, generator: generator, logger: logger}
}

func (e *Engine) Summarize(ctx context.Context, text string, strategy string) (domain.SummaryResult, error) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < MinTextLen {
		return domain.SummaryResult{
			Text:             text,
			Method:           domain.SummaryExtractive,
			CompressionRatio: 1.0,
			TooShort:         true,
		}, nil
	}

	method := e.selectStrategy(strategy, trimmed)

	var summary string
	switch method {
	case domain.SummaryAbstractive:
		out, err := e.abstractive(ctx, trimmed)
		if err != nil {
			e.logger.Warn("abstractive summarization failed, falling back to extractive", "error", err)
			method = domain.SummaryExtractive
			summary = extractiveSummary(trimmed, e.topSentences)
		} else {
			summary = out
		}
	case domain.SummaryGraphRank:
		summary = graphRankSummary(trimmed, e.topSentences)
		if summary == "" {
			e.logger.Warn("graph rank produced empty summary, falling back to extractive")
			method = domain.SummaryExtractive
			summary = extractiveSummary(trimmed, e.topSentences)
		}
	case domain.SummaryKeywordWeighted:
		summary = keywordSummary(trimmed, e.topSentences)
	default:
		method = domain.SummaryExtractive
		summary = extractiveSummary(trimmed, e.topSentences)
	}

	if summary == "" {
		// Terminal guard: a sentence-free input still gets its own text back.
		summary = trimmed
		method = domain.SummaryExtractive
	}

	return domain.SummaryResult{
		Text:             summary,
		Method:           method,
		CompressionRatio: float64(len(summary)) / float64(len(text)),
	}, nil
}

func (e *Engine) selectStrategy(strategy, text string) domain.SummaryMethod {
	switch strategy {
	case string(domain.SummaryExtractive):
		return domain.SummaryExtractive
	case string(domain.SummaryAbstractive):
		return domain.SummaryAbstractive
	case string(domain.SummaryGraphRank):
		return domain.SummaryGraphRank
	case string(domain.SummaryKeywordWeighted):
		return domain.SummaryKeywordWeighted
	}

	words := textproc.WordCount(text)
	switch {
	case words > autoAbstractiveWords && e.generator != nil:
		return domain.SummaryAbstractive
	case words > autoGraphWords:
		return domain.SummaryGraphRank
	default:
		return domain.SummaryExtractive
	}
}
