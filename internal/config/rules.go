package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Department owns a set of categories. Order matters: the first department
// whose set contains the category wins.
type Department struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Email      string   `yaml:"email"`
	Categories []string `yaml:"categories"`
}

// CategoryRule drives the rule-based classification strategy. Confidence is
// a fixed per-category constant, not derived from the match score.
type CategoryRule struct {
	Name       string   `yaml:"name"`
	Keywords   []string `yaml:"keywords"`
	Weight     float64  `yaml:"weight"`
	Confidence float64  `yaml:"confidence"`
}

// Rules is the immutable decision table set: loaded once at startup and
// passed by value into the engines, never mutated at runtime.
type Rules struct {
	ConfidenceThreshold float64           `yaml:"confidence_threshold"`
	FallbackDepartment  string            `yaml:"fallback_department"`
	Departments         []Department      `yaml:"departments"`
	Priorities          map[string]string `yaml:"priorities"`
	UrgentKeywords      []string          `yaml:"urgent_keywords"`
	SensitiveKeywords   []string          `yaml:"sensitive_keywords"`
	Categories          []CategoryRule    `yaml:"categories"`
}

// LoadRules returns the built-in tables, overlaid with the YAML file at
// path when one is given. Sections present in the file replace the built-in
// section wholesale.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse rules file: %w", err)
	}
	if rules.ConfidenceThreshold <= 0 || rules.ConfidenceThreshold > 1 {
		return Rules{}, fmt.Errorf("confidence_threshold %v out of (0,1]", rules.ConfidenceThreshold)
	}
	if rules.FallbackDepartment == "" {
		return Rules{}, fmt.Errorf("fallback_department is required")
	}
	return rules, nil
}

func DefaultRules() Rules {
	return Rules{
		ConfidenceThreshold: 0.7,
		FallbackDepartment:  "archive",
		Departments: []Department{
			{
				ID:         "finance",
				Name:       "Finance Department",
				Email:      "finance@company.com",
				Categories: []string{"invoice", "financial_statement", "receipt", "expense_report"},
			},
			{
				ID:         "hr",
				Name:       "Human Resources",
				Email:      "hr@company.com",
				Categories: []string{"resume", "employment_contract", "policy_document"},
			},
			{
				ID:         "legal",
				Name:       "Legal Department",
				Email:      "legal@company.com",
				Categories: []string{"contract", "legal_document", "agreement", "compliance_document"},
			},
			{
				ID:         "operations",
				Name:       "Operations Department",
				Email:      "operations@company.com",
				Categories: []string{"report", "technical_manual", "letter", "procedure_document"},
			},
			{
				ID:         "management",
				Name:       "Management",
				Email:      "management@company.com",
				Categories: []string{"academic_paper", "executive_summary", "strategic_plan"},
			},
			{
				ID:         "archive",
				Name:       "Document Archive",
				Email:      "archive@company.com",
				Categories: []string{"other", "unknown"},
			},
		},
		Priorities: map[string]string{
			"invoice":             "high",
			"contract":            "high",
			"legal_document":      "high",
			"financial_statement": "medium",
			"resume":              "medium",
			"report":              "low",
			"other":               "low",
		},
		UrgentKeywords:    []string{"urgent", "asap", "immediate", "priority", "deadline"},
		SensitiveKeywords: []string{"confidential", "private", "restricted", "classified"},
		Categories: []CategoryRule{
			{
				Name:       "invoice",
				Keywords:   []string{"invoice", "bill", "payment", "amount due", "total", "subtotal", "tax", "payable"},
				Weight:     1.0,
				Confidence: 0.8,
			},
			{
				Name:       "contract",
				Keywords:   []string{"agreement", "contract", "terms and conditions", "whereas", "party"},
				Weight:     1.0,
				Confidence: 0.7,
			},
			{
				Name:       "resume",
				Keywords:   []string{"experience", "education", "skills", "employment history", "university", "degree"},
				Weight:     1.0,
				Confidence: 0.75,
			},
			{
				Name:       "letter",
				Keywords:   []string{"dear", "sincerely", "regards", "yours faithfully"},
				Weight:     1.0,
				Confidence: 0.6,
			},
			{
				Name:       "report",
				Keywords:   []string{"executive summary", "conclusion", "analysis", "findings", "quarterly", "investigation"},
				Weight:     1.0,
				Confidence: 0.6,
			},
			{
				Name:       "legal_document",
				Keywords:   []string{"court", "legal", "attorney", "law", "plaintiff", "defendant"},
				Weight:     1.0,
				Confidence: 0.7,
			},
			{
				Name:       "financial_statement",
				Keywords:   []string{"balance sheet", "income statement", "cash flow", "fiscal year", "assets", "liabilities"},
				Weight:     1.0,
				Confidence: 0.7,
			},
			{
				Name:       "technical_manual",
				Keywords:   []string{"installation", "configuration", "troubleshooting", "user guide", "specification"},
				Weight:     1.0,
				Confidence: 0.65,
			},
			{
				Name:       "policy_document",
				Keywords:   []string{"policy", "procedure", "guideline", "circular", "standard operating"},
				Weight:     1.0,
				Confidence: 0.65,
			},
			{
				Name:       "academic_paper",
				Keywords:   []string{"abstract", "methodology", "literature review", "references", "hypothesis"},
				Weight:     1.0,
				Confidence: 0.65,
			},
		},
	}
}

// CategoryNames returns the closed category set in enumeration order,
// including the terminal "other".
func (r Rules) CategoryNames() []string {
	names := make([]string, 0, len(r.Categories)+1)
	for _, c := range r.Categories {
		names = append(names, c.Name)
	}
	return append(names, "other")
}
