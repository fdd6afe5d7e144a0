package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRulesAreInternallyConsistent(t *testing.T) {
	rules := DefaultRules()

	if rules.ConfidenceThreshold != 0.7 {
		t.Fatalf("expected threshold 0.7, got %v", rules.ConfidenceThreshold)
	}

	foundFallback := false
	for _, dept := range rules.Departments {
		if dept.ID == rules.FallbackDepartment {
			foundFallback = true
		}
		if dept.Email == "" {
			t.Fatalf("department %s has no email", dept.ID)
		}
	}
	if !foundFallback {
		t.Fatalf("fallback department %q not in department table", rules.FallbackDepartment)
	}

	for _, rule := range rules.Categories {
		if len(rule.Keywords) == 0 {
			t.Fatalf("category %s has no keywords", rule.Name)
		}
		if rule.Confidence <= 0 || rule.Confidence > 1 {
			t.Fatalf("category %s confidence out of range: %v", rule.Name, rule.Confidence)
		}
	}
}

func TestCategoryNamesEndWithOther(t *testing.T) {
	names := DefaultRules().CategoryNames()
	if names[len(names)-1] != "other" {
		t.Fatalf("expected terminal other, got %v", names)
	}
}

func TestLoadRulesWithoutPathUsesDefaults(t *testing.T) {
	rules, err := LoadRules("")
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	if len(rules.Departments) == 0 || len(rules.Categories) == 0 {
		t.Fatalf("expected built-in tables, got %+v", rules)
	}
}

func TestLoadRulesOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	raw := []byte(`
confidence_threshold: 0.9
urgent_keywords: ["red alert"]
`)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	if rules.ConfidenceThreshold != 0.9 {
		t.Fatalf("expected overridden threshold, got %v", rules.ConfidenceThreshold)
	}
	if len(rules.UrgentKeywords) != 1 || rules.UrgentKeywords[0] != "red alert" {
		t.Fatalf("expected replaced urgent keywords, got %v", rules.UrgentKeywords)
	}
	// Untouched sections keep their defaults.
	if rules.FallbackDepartment != "archive" {
		t.Fatalf("expected default fallback, got %s", rules.FallbackDepartment)
	}
}

func TestLoadRulesRejectsBadThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("confidence_threshold: 1.5\n"), 0o644); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	if _, err := LoadRules(path); err == nil {
		t.Fatalf("expected error for threshold > 1")
	}
}
