package usecase

import (
	"context"
	"fmt"

	"github.com/vmalikov/docflow/internal/core/domain"
	"github.com/vmalikov/docflow/internal/core/ports"
)

// QueryDocumentUseCase is the read side: document state and its audit trail.
type QueryDocumentUseCase struct {
	repo ports.DocumentRepository
	log  ports.ProcessingLog
}

func NewQueryDocumentUseCase(repo ports.DocumentRepository, log ports.ProcessingLog) *QueryDocumentUseCase {
	return &QueryDocumentUseCase{repo: repo, log: log}
}

func (uc *QueryDocumentUseCase) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	return doc, nil
}

func (uc *QueryDocumentUseCase) ListLogs(ctx context.Context, documentID string) ([]domain.ProcessingLogEntry, error) {
	// A missing document must 404, not return an empty trail.
	if _, err := uc.repo.GetByID(ctx, documentID); err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	entries, err := uc.log.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("list processing log: %w", err)
	}
	return entries, nil
}
