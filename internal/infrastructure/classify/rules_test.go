package classify

import (
	"context"
	"testing"

	"github.com/vmalikov/docflow/internal/core/domain"
)

func testRules() []CategoryRule {
	return []CategoryRule{
		{Name: "invoice", Keywords: []string{"invoice", "amount due", "payment"}, Weight: 1.0, Confidence: 0.8},
		{Name: "contract", Keywords: []string{"agreement", "contract", "whereas"}, Weight: 1.0, Confidence: 0.7},
		{Name: "letter", Keywords: []string{"dear", "sincerely"}, Weight: 1.0, Confidence: 0.6},
	}
}

func TestRuleStrategyPicksHighestScore(t *testing.T) {
	strategy := NewRuleStrategy(testRules())

	result, err := strategy.Attempt(context.Background(),
		"INVOICE #42: payment of $100 is due. Amount due by Friday. Invoice attached.")
	if err != nil {
		t.Fatalf("Attempt() error = %v", err)
	}
	if result.Category != "invoice" {
		t.Fatalf("expected invoice, got %s", result.Category)
	}
	if result.Confidence != 0.8 {
		t.Fatalf("expected fixed confidence 0.8, got %v", result.Confidence)
	}
}

func TestRuleStrategyTieBreaksByOrder(t *testing.T) {
	strategy := NewRuleStrategy(testRules())

	// One hit each for invoice and contract; the earlier rule wins.
	result, err := strategy.Attempt(context.Background(), "the invoice references the agreement")
	if err != nil {
		t.Fatalf("Attempt() error = %v", err)
	}
	if result.Category != "invoice" {
		t.Fatalf("expected enumeration-order tie-break to invoice, got %s", result.Category)
	}
}

func TestRuleStrategyNoMatchIsOther(t *testing.T) {
	strategy := NewRuleStrategy(testRules())

	result, err := strategy.Attempt(context.Background(), "completely unrelated gardening notes")
	if err != nil {
		t.Fatalf("Attempt() error = %v", err)
	}
	if result.Category != domain.CategoryOther {
		t.Fatalf("expected other, got %s", result.Category)
	}
	if result.Confidence != otherConfidence {
		t.Fatalf("expected confidence %v, got %v", otherConfidence, result.Confidence)
	}
}

func TestRuleStrategyIsDeterministic(t *testing.T) {
	strategy := NewRuleStrategy(testRules())
	text := "dear sir, please find the invoice for your payment, sincerely"

	first, err := strategy.Attempt(context.Background(), text)
	if err != nil {
		t.Fatalf("Attempt() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := strategy.Attempt(context.Background(), text)
		if err != nil {
			t.Fatalf("Attempt() error = %v", err)
		}
		if again.Category != first.Category || again.Confidence != first.Confidence {
			t.Fatalf("non-deterministic result: %+v vs %+v", again, first)
		}
	}
}
