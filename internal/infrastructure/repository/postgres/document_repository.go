package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vmalikov/docflow/internal/core/domain"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *DocumentRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082801)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	original_filename TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	status TEXT NOT NULL,
	extracted_text TEXT NOT NULL DEFAULT '',
	summary TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	confidence DOUBLE PRECISION,
	department TEXT NOT NULL DEFAULT '',
	error_message TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);
CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at DESC);

CREATE TABLE IF NOT EXISTS processing_log (
	id BIGSERIAL PRIMARY KEY,
	document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	stage TEXT NOT NULL,
	outcome TEXT NOT NULL,
	message TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_processing_log_document ON processing_log(document_id, created_at, id);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO documents (
	id, filename, original_filename, mime_type, storage_path, status, extracted_text, summary, category, confidence, department, error_message, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
`,
		doc.ID, doc.Filename, doc.OriginalFilename, doc.MimeType, doc.StoragePath, string(doc.Status),
		doc.ExtractedText, doc.Summary, doc.Category, doc.Confidence, doc.Department, doc.Error,
		doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, filename, original_filename, mime_type, storage_path, status, extracted_text, summary, category, confidence, department, error_message, created_at, updated_at
FROM documents
WHERE id = $1
`, id)

	var doc domain.Document
	var status string

	err := row.Scan(
		&doc.ID, &doc.Filename, &doc.OriginalFilename, &doc.MimeType, &doc.StoragePath, &status,
		&doc.ExtractedText, &doc.Summary, &doc.Category, &doc.Confidence, &doc.Department, &doc.Error,
		&doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}

	doc.Status = domain.DocumentStatus(status)
	return &doc, nil
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	return requireRow(result, "update document status", id)
}

func (r *DocumentRepository) SaveExtractedText(ctx context.Context, id string, text string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET extracted_text = $2, updated_at = $3
WHERE id = $1
`, id, text, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save extracted text: %w", err)
	}
	return requireRow(result, "save extracted text", id)
}

func (r *DocumentRepository) SaveClassification(ctx context.Context, id string, category string, confidence float64) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET category = $2, confidence = $3, updated_at = $4
WHERE id = $1
`, id, category, confidence, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save classification: %w", err)
	}
	return requireRow(result, "save classification", id)
}

func (r *DocumentRepository) SaveSummary(ctx context.Context, id string, summary string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET summary = $2, updated_at = $3
WHERE id = $1
`, id, summary, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	return requireRow(result, "save summary", id)
}

func (r *DocumentRepository) SaveDepartment(ctx context.Context, id string, department string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET department = $2, updated_at = $3
WHERE id = $1
`, id, department, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save department: %w", err)
	}
	return requireRow(result, "save department", id)
}

func requireRow(result sql.Result, operation, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, operation, fmt.Errorf("id=%s", id))
	}
	return nil
}
