package ports

import (
	"context"
	"io"

	"github.com/vmalikov/docflow/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentProcessor runs the analysis pipeline for one stored document.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}

// DocumentReader is the inbound read model for document state and audit trail.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	ListLogs(ctx context.Context, documentID string) ([]domain.ProcessingLogEntry, error)
}
