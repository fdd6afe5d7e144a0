package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/vmalikov/docflow/internal/core/domain"
)

type strategyFake struct {
	method domain.ClassifyMethod
	result domain.ClassificationResult
	err    error
	calls  int
}

func (f *strategyFake) Method() domain.ClassifyMethod { return f.method }

func (f *strategyFake) Attempt(context.Context, string) (domain.ClassificationResult, error) {
	f.calls++
	if f.err != nil {
		return domain.ClassificationResult{}, f.err
	}
	return f.result, nil
}

func TestClassifyShortTextSkipsStrategies(t *testing.T) {
	strategy := &strategyFake{method: domain.MethodRuleBased}
	engine := NewEngine(nil, strategy)

	result, err := engine.Classify(context.Background(), "   hi   ")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if result.Category != domain.CategoryOther || result.Confidence != 0 {
		t.Fatalf("expected other/0.0, got %s/%v", result.Category, result.Confidence)
	}
	if strategy.calls != 0 {
		t.Fatalf("short text must not invoke strategies")
	}
}

func TestClassifyShortTextGateCountsRunes(t *testing.T) {
	strategy := &strategyFake{method: domain.MethodRuleBased}
	engine := NewEngine(nil, strategy)

	// 7 runes but 14 bytes; still under the minimum length.
	result, err := engine.Classify(context.Background(), "договор")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if result.Category != domain.CategoryOther || result.Confidence != 0 {
		t.Fatalf("expected other/0.0, got %s/%v", result.Category, result.Confidence)
	}
	if strategy.calls != 0 {
		t.Fatalf("short non-ASCII text must not invoke strategies")
	}
}

func TestClassifyFallsThroughUnavailableStrategies(t *testing.T) {
	first := &strategyFake{
		method: domain.MethodMLModel,
		err:    domain.WrapError(domain.ErrUnavailable, "bayes classify", errors.New("no model")),
	}
	second := &strategyFake{
		method: domain.MethodRuleBased,
		result: domain.ClassificationResult{Category: "invoice", Confidence: 0.8},
	}
	engine := NewEngine(nil, first, second)

	result, err := engine.Classify(context.Background(), "invoice with amount due today")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Fatalf("expected both strategies tried, got %d/%d", first.calls, second.calls)
	}
	if result.Category != "invoice" {
		t.Fatalf("expected invoice, got %s", result.Category)
	}
	if result.Method != domain.MethodRuleBased {
		t.Fatalf("expected method from winning strategy, got %s", result.Method)
	}
}

func TestClassifyFirstStrategyWins(t *testing.T) {
	first := &strategyFake{
		method: domain.MethodMLModel,
		result: domain.ClassificationResult{Category: "contract", Confidence: 0.9},
	}
	second := &strategyFake{method: domain.MethodRuleBased}
	engine := NewEngine(nil, first, second)

	result, err := engine.Classify(context.Background(), "agreement between the parties")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if second.calls != 0 {
		t.Fatalf("later strategies must not run after a success")
	}
	if result.Method != domain.MethodMLModel {
		t.Fatalf("expected ml_model method, got %s", result.Method)
	}
}

func TestClassifyExhaustedChainYieldsOther(t *testing.T) {
	only := &strategyFake{
		method: domain.MethodLLMAPI,
		err:    errors.New("connection refused"),
	}
	engine := NewEngine(nil, only)

	result, err := engine.Classify(context.Background(), "long enough text for the chain")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if result.Category != domain.CategoryOther || result.Confidence != 0 {
		t.Fatalf("expected other/0.0 on exhausted chain, got %s/%v", result.Category, result.Confidence)
	}
}
