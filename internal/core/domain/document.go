package domain

import "time"

type DocumentStatus string

const (
	StatusPending    DocumentStatus = "pending"
	StatusProcessing DocumentStatus = "processing"
	StatusCompleted  DocumentStatus = "completed"
	StatusFailed     DocumentStatus = "failed"
)

type Document struct {
	ID               string         `json:"id"`
	Filename         string         `json:"filename"`
	OriginalFilename string         `json:"original_filename"`
	MimeType         string         `json:"mime_type"`
	StoragePath      string         `json:"storage_path"`
	Status           DocumentStatus `json:"status"`
	ExtractedText    string         `json:"extracted_text,omitempty"`
	Summary          string         `json:"summary,omitempty"`
	Category         string         `json:"category,omitempty"`
	Confidence       *float64       `json:"confidence,omitempty"`
	Department       string         `json:"department,omitempty"`
	Error            string         `json:"error,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type Stage string

const (
	StageExtraction     Stage = "extraction"
	StageClassification Stage = "classification"
	StageSummarization  Stage = "summarization"
	StageRouting        Stage = "routing"
	StagePipeline       Stage = "pipeline"
)

type Outcome string

const (
	OutcomeStarted   Outcome = "started"
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
)

// ProcessingLogEntry is one append-only audit record. Entries for a given
// document are written in stage order and never rewritten.
type ProcessingLogEntry struct {
	ID         int64     `json:"id"`
	DocumentID string    `json:"document_id"`
	Stage      Stage     `json:"stage"`
	Outcome    Outcome   `json:"outcome"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}
