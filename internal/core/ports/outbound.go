package ports

import (
	"context"
	"io"

	"github.com/vmalikov/docflow/internal/core/domain"
)

// DocumentRepository persists and reads document state. Each stage of the
// pipeline writes through one of the Save* methods before the next stage runs.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveExtractedText(ctx context.Context, id string, text string) error
	SaveClassification(ctx context.Context, id string, category string, confidence float64) error
	SaveSummary(ctx context.Context, id string, summary string) error
	SaveDepartment(ctx context.Context, id string, department string) error
}

// ProcessingLog is the append-only audit trail.
type ProcessingLog interface {
	Append(ctx context.Context, entry *domain.ProcessingLogEntry) error
	ListByDocument(ctx context.Context, documentID string) ([]domain.ProcessingLogEntry, error)
}

// ObjectStorage stores source documents under opaque keys.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes processing requests.
type MessageQueue interface {
	PublishDocumentQueued(ctx context.Context, documentID string) error
	SubscribeDocumentQueued(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor extracts plain text from a stored document.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// Classifier assigns a category and confidence to extracted text.
// Implementations produce a result for any input; an error means the
// engine itself broke, not that no strategy matched.
type Classifier interface {
	Classify(ctx context.Context, text string) (domain.ClassificationResult, error)
}

// Summarizer condenses text using the named strategy ("auto" selects one).
type Summarizer interface {
	Summarize(ctx context.Context, text string, strategy string) (domain.SummaryResult, error)
}

// Router decides a destination for a classified document and fans the
// decision out to notification channels.
type Router interface {
	Route(category string, confidence float64, fullText string) domain.RoutingDecision
	Dispatch(ctx context.Context, decision domain.RoutingDecision, doc *domain.Document, summary string) []domain.NotificationOutcome
}

// NotificationChannel delivers a routing decision to one transport.
type NotificationChannel interface {
	Name() string
	Notify(ctx context.Context, decision domain.RoutingDecision, doc *domain.Document, summary string) error
}

// TextGenerator is the LLM text endpoint used for abstractive summaries.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
