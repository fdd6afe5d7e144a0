package domain

import "time"

type ClassifyMethod string

const (
	MethodMLModel   ClassifyMethod = "ml_model"
	MethodLLMAPI    ClassifyMethod = "llm_api"
	MethodLLMMock   ClassifyMethod = "llm_mock"
	MethodRuleBased ClassifyMethod = "rule_based"
)

// CategoryOther is the terminal category for text no strategy can place.
const CategoryOther = "other"

type ClassificationResult struct {
	Category      string             `json:"category"`
	Confidence    float64            `json:"confidence"`
	Method        ClassifyMethod     `json:"method"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
	Reason        string             `json:"reason,omitempty"`
}

type SummaryMethod string

const (
	SummaryExtractive      SummaryMethod = "extractive"
	SummaryAbstractive     SummaryMethod = "abstractive"
	SummaryGraphRank       SummaryMethod = "graph_rank"
	SummaryKeywordWeighted SummaryMethod = "keyword_weighted"
)

type SummaryResult struct {
	Text             string        `json:"text"`
	Method           SummaryMethod `json:"method"`
	CompressionRatio float64       `json:"compression_ratio"`
	TooShort         bool          `json:"too_short,omitempty"`
}

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type RoutingDecision struct {
	DepartmentID    string    `json:"department_id"`
	DepartmentName  string    `json:"department_name"`
	DepartmentEmail string    `json:"department_email,omitempty"`
	Priority        Priority  `json:"priority"`
	IsSensitive     bool      `json:"is_sensitive"`
	NeedsReview     bool      `json:"needs_review"`
	Reason          string    `json:"reason"`
	Confidence      float64   `json:"confidence"`
	DecidedAt       time.Time `json:"decided_at"`
}

// NotificationOutcome records one delivery attempt per configured channel.
// Dispatch always returns one outcome per channel regardless of failures.
type NotificationOutcome struct {
	Channel string `json:"channel"`
	Success bool   `json:"success"`
	Detail  string `json:"detail,omitempty"`
}
