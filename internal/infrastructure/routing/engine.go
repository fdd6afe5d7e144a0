// Package routing implements confidence-gated department resolution and
// notification fan-out. The decision tables are immutable: built once at
// startup and never mutated.
package routing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vmalikov/docflow/internal/core/domain"
	"github.com/vmalikov/docflow/internal/core/ports"
)

type Department struct {
	ID         string
	Name       string
	Email      string
	Categories []string
}

// Tables is the static decision data: department ownership, priorities,
// and the keyword lists for urgency/sensitivity.
type Tables struct {
	ConfidenceThreshold float64
	FallbackDepartment  string
	Departments         []Department
	Priorities          map[string]domain.Priority
	UrgentKeywords      []string
	SensitiveKeywords   []string
}

type Engine struct {
	tables   Tables
	channels []ports.NotificationChannel
	logger   *slog.Logger
}

func NewEngine(logger *slog.Logger, tables Tables, channels ...ports.NotificationChannel) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{tables: tables, channels: channels, logger: logger}
}

// Route decides the destination department. The low-confidence gate takes
// precedence over category ownership: anything under the threshold goes to
// the fallback department for manual review.
func (e *Engine) Route(category string, confidence float64, fullText string) domain.RoutingDecision {
	lower := strings.ToLower(fullText)
	now := time.Now().UTC()

	if confidence < e.tables.ConfidenceThreshold {
		dept := e.departmentByID(e.tables.FallbackDepartment)
		return domain.RoutingDecision{
			DepartmentID:    dept.ID,
			DepartmentName:  dept.Name,
			DepartmentEmail: dept.Email,
			Priority:        e.priority(lower, category),
			IsSensitive:     containsAny(lower, e.tables.SensitiveKeywords),
			NeedsReview:     true,
			Reason:          "low confidence classification",
			Confidence:      confidence,
			DecidedAt:       now,
		}
	}

	dept, found := e.departmentByCategory(category)
	if !found {
		dept = e.departmentByID(e.tables.FallbackDepartment)
	}
	return domain.RoutingDecision{
		DepartmentID:    dept.ID,
		DepartmentName:  dept.Name,
		DepartmentEmail: dept.Email,
		Priority:        e.priority(lower, category),
		IsSensitive:     containsAny(lower, e.tables.SensitiveKeywords),
		Reason:          fmt.Sprintf("classified as %s", category),
		Confidence:      confidence,
		DecidedAt:       now,
	}
}

// Dispatch attempts every configured channel independently. A channel
// failure becomes a failed outcome; it never blocks the other channels and
// never raises. One outcome is returned per configured channel.
func (e *Engine) Dispatch(ctx context.Context, decision domain.RoutingDecision, doc *domain.Document, summary string) []domain.NotificationOutcome {
	outcomes := make([]domain.NotificationOutcome, 0, len(e.channels))
	for _, channel := range e.channels {
		if err := channel.Notify(ctx, decision, doc, summary); err != nil {
			e.logger.Warn("notification delivery failed",
				"channel", channel.Name(),
				"document_id", doc.ID,
				"error", err,
			)
			outcomes = append(outcomes, domain.NotificationOutcome{
				Channel: channel.Name(),
				Success: false,
				Detail:  err.Error(),
			})
			continue
		}
		outcomes = append(outcomes, domain.NotificationOutcome{
			Channel: channel.Name(),
			Success: true,
			Detail:  "delivered",
		})
	}
	return outcomes
}

func (e *Engine) priority(lowerText, category string) domain.Priority {
	if containsAny(lowerText, e.tables.UrgentKeywords) {
		return domain.PriorityUrgent
	}
	if p, ok := e.tables.Priorities[category]; ok {
		return p
	}
	return domain.PriorityLow
}

func (e *Engine) departmentByCategory(category string) (Department, bool) {
	for _, dept := range e.tables.Departments {
		for _, owned := range dept.Categories {
			if owned == category {
				return dept, true
			}
		}
	}
	return Department{}, false
}

func (e *Engine) departmentByID(id string) Department {
	for _, dept := range e.tables.Departments {
		if dept.ID == id {
			return dept
		}
	}
	return Department{ID: id, Name: id}
}

func containsAny(lowerText string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lowerText, kw) {
			return true
		}
	}
	return false
}
