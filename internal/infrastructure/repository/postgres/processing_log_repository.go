package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vmalikov/docflow/internal/core/domain"
)

// ProcessingLogRepository is append-only. Entries are never updated or
// deleted; ListByDocument returns them in insertion order.
type ProcessingLogRepository struct {
	db *sql.DB
}

func NewProcessingLogRepository(db *sql.DB) *ProcessingLogRepository {
	return &ProcessingLogRepository{db: db}
}

func (r *ProcessingLogRepository) Append(ctx context.Context, entry *domain.ProcessingLogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	row := r.db.QueryRowContext(ctx, `
INSERT INTO processing_log (document_id, stage, outcome, message, created_at)
VALUES ($1,$2,$3,$4,$5)
RETURNING id
`, entry.DocumentID, string(entry.Stage), string(entry.Outcome), entry.Message, entry.CreatedAt)

	if err := row.Scan(&entry.ID); err != nil {
		return fmt.Errorf("insert processing log entry: %w", err)
	}
	return nil
}

func (r *ProcessingLogRepository) ListByDocument(ctx context.Context, documentID string) ([]domain.ProcessingLogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, document_id, stage, outcome, message, created_at
FROM processing_log
WHERE document_id = $1
ORDER BY created_at, id
`, documentID)
	if err != nil {
		return nil, fmt.Errorf("query processing log: %w", err)
	}
	defer rows.Close()

	var entries []domain.ProcessingLogEntry
	for rows.Next() {
		var entry domain.ProcessingLogEntry
		var stage, outcome string
		if err := rows.Scan(&entry.ID, &entry.DocumentID, &stage, &outcome, &entry.Message, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan processing log entry: %w", err)
		}
		entry.Stage = domain.Stage(stage)
		entry.Outcome = domain.Outcome(outcome)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate processing log: %w", err)
	}
	return entries, nil
}
