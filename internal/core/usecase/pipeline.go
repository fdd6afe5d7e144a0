package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmalikov/docflow/internal/core/domain"
	"github.com/vmalikov/docflow/internal/core/ports"
)

// StageObserver receives per-stage timing, typically backed by Prometheus.
type StageObserver func(stage domain.Stage, duration time.Duration, err error)

// ProcessDocumentUseCase runs the sequential pipeline: extraction,
// classification, summarization, routing. Extraction failure is fatal and
// fails the document; every later stage degrades instead. A document whose
// text was extracted always ends up completed, whatever happened downstream.
type ProcessDocumentUseCase struct {
	repo       ports.DocumentRepository
	auditLog   ports.ProcessingLog
	extractor  ports.TextExtractor
	classifier ports.Classifier
	summarizer ports.Summarizer
	router     ports.Router
	logger     *slog.Logger

	// Optional, set by bootstrap.
	ObserveStage StageObserver
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	auditLog ports.ProcessingLog,
	extractor ports.TextExtractor,
	classifier ports.Classifier,
	summarizer ports.Summarizer,
	router ports.Router,
	logger *slog.Logger,
) *ProcessDocumentUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProcessDocumentUseCase{
		repo:       repo,
		auditLog:   auditLog,
		extractor:  extractor,
		classifier: classifier,
		summarizer: summarizer,
		router:     router,
		logger:     logger,
	}
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) (err error) {
	doc, loadErr := uc.repo.GetByID(ctx, documentID)
	if loadErr != nil {
		return fmt.Errorf("fetch document by id: %w", loadErr)
	}

	if markErr := uc.repo.UpdateStatus(ctx, documentID, domain.StatusProcessing, ""); markErr != nil {
		return fmt.Errorf("set status=processing: %w", markErr)
	}
	uc.appendLog(ctx, documentID, domain.StagePipeline, domain.OutcomeStarted, "pipeline started")

	// A panicking stage must still leave the document in a terminal state.
	defer func() {
		if r := recover(); r != nil {
			panicErr := fmt.Errorf("pipeline panic: %v", r)
			uc.logger.Error("pipeline panicked", "document_id", documentID, "panic", r)
			uc.failDocument(ctx, documentID, panicErr)
			err = panicErr
		}
	}()

	text, extractErr := uc.runExtraction(ctx, doc)
	if extractErr != nil {
		uc.failDocument(ctx, documentID, extractErr)
		return extractErr
	}

	classification := uc.runClassification(ctx, documentID, text)
	uc.runSummarization(ctx, documentID, text)
	uc.runRouting(ctx, doc, classification, text)

	if markErr := uc.repo.UpdateStatus(ctx, documentID, domain.StatusCompleted, ""); markErr != nil {
		return fmt.Errorf("set status=completed: %w", markErr)
	}
	uc.appendLog(ctx, documentID, domain.StagePipeline, domain.OutcomeCompleted, "pipeline completed")
	return nil
}

// runExtraction is the only fatal stage.
func (uc *ProcessDocumentUseCase) runExtraction(ctx context.Context, doc *domain.Document) (string, error) {
	uc.appendLog(ctx, doc.ID, domain.StageExtraction, domain.OutcomeStarted, "")
	start := time.Now()

	text, err := uc.extractor.Extract(ctx, doc)
	uc.observe(domain.StageExtraction, time.Since(start), err)
	if err != nil {
		wrapped := fmt.Errorf("extract text: %w", err)
		uc.appendLog(ctx, doc.ID, domain.StageExtraction, domain.OutcomeFailed, wrapped.Error())
		return "", wrapped
	}

	if saveErr := uc.repo.SaveExtractedText(ctx, doc.ID, text); saveErr != nil {
		wrapped := fmt.Errorf("save extracted text: %w", saveErr)
		uc.appendLog(ctx, doc.ID, domain.StageExtraction, domain.OutcomeFailed, wrapped.Error())
		return "", wrapped
	}

	uc.appendLog(ctx, doc.ID, domain.StageExtraction, domain.OutcomeCompleted,
		fmt.Sprintf("extracted %d characters", len(text)))
	return text, nil
}

// runClassification never fails the run. When the engine errors, routing
// proceeds with an unclassified result at zero confidence, which the
// low-confidence gate then sends to the fallback department.
func (uc *ProcessDocumentUseCase) runClassification(ctx context.Context, documentID, text string) domain.ClassificationResult {
	uc.appendLog(ctx, documentID, domain.StageClassification, domain.OutcomeStarted, "")
	start := time.Now()

	result, err := uc.classifier.Classify(ctx, text)
	uc.observe(domain.StageClassification, time.Since(start), err)
	if err != nil {
		uc.logger.Warn("classification failed", "document_id", documentID, "error", err)
		uc.appendLog(ctx, documentID, domain.StageClassification, domain.OutcomeFailed, err.Error())
		return domain.ClassificationResult{Category: domain.CategoryOther, Confidence: 0}
	}

	if saveErr := uc.repo.SaveClassification(ctx, documentID, result.Category, result.Confidence); saveErr != nil {
		uc.logger.Warn("persist classification failed", "document_id", documentID, "error", saveErr)
		uc.appendLog(ctx, documentID, domain.StageClassification, domain.OutcomeFailed, saveErr.Error())
		return result
	}

	uc.appendLog(ctx, documentID, domain.StageClassification, domain.OutcomeCompleted,
		fmt.Sprintf("category=%s confidence=%.2f method=%s", result.Category, result.Confidence, result.Method))
	return result
}

func (uc *ProcessDocumentUseCase) runSummarization(ctx context.Context, documentID, text string) {
	uc.appendLog(ctx, documentID, domain.StageSummarization, domain.OutcomeStarted, "")
	start := time.Now()

	result, err := uc.summarizer.Summarize(ctx, text, "auto")
	uc.observe(domain.StageSummarization, time.Since(start), err)
	if err != nil {
		uc.logger.Warn("summarization failed", "document_id", documentID, "error", err)
		uc.appendLog(ctx, documentID, domain.StageSummarization, domain.OutcomeFailed, err.Error())
		return
	}

	if saveErr := uc.repo.SaveSummary(ctx, documentID, result.Text); saveErr != nil {
		uc.logger.Warn("persist summary failed", "document_id", documentID, "error", saveErr)
		uc.appendLog(ctx, documentID, domain.StageSummarization, domain.OutcomeFailed, saveErr.Error())
		return
	}

	uc.appendLog(ctx, documentID, domain.StageSummarization, domain.OutcomeCompleted,
		fmt.Sprintf("method=%s compression=%.2f", result.Method, result.CompressionRatio))
}

func (uc *ProcessDocumentUseCase) runRouting(ctx context.Context, doc *domain.Document, classification domain.ClassificationResult, text string) {
	uc.appendLog(ctx, doc.ID, domain.StageRouting, domain.OutcomeStarted, "")
	start := time.Now()

	decision := uc.router.Route(classification.Category, classification.Confidence, text)

	// Notifications see the freshly classified state, not the stale row.
	routedDoc := *doc
	routedDoc.Category = classification.Category
	routedDoc.Confidence = &classification.Confidence
	summary, _ := uc.currentSummary(ctx, doc.ID)

	outcomes := uc.router.Dispatch(ctx, decision, &routedDoc, summary)
	delivered := 0
	for _, outcome := range outcomes {
		if outcome.Success {
			delivered++
		}
	}

	saveErr := uc.repo.SaveDepartment(ctx, doc.ID, decision.DepartmentID)
	uc.observe(domain.StageRouting, time.Since(start), saveErr)
	if saveErr != nil {
		uc.logger.Warn("persist routing failed", "document_id", doc.ID, "error", saveErr)
		uc.appendLog(ctx, doc.ID, domain.StageRouting, domain.OutcomeFailed, saveErr.Error())
		return
	}

	uc.appendLog(ctx, doc.ID, domain.StageRouting, domain.OutcomeCompleted,
		fmt.Sprintf("department=%s priority=%s review=%t notifications=%d/%d",
			decision.DepartmentID, decision.Priority, decision.NeedsReview, delivered, len(outcomes)))
}

func (uc *ProcessDocumentUseCase) currentSummary(ctx context.Context, documentID string) (string, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return "", err
	}
	return doc.Summary, nil
}

func (uc *ProcessDocumentUseCase) failDocument(ctx context.Context, documentID string, cause error) {
	if markErr := uc.repo.UpdateStatus(ctx, documentID, domain.StatusFailed, cause.Error()); markErr != nil {
		uc.logger.Error("mark document failed", "document_id", documentID, "error", markErr)
	}
	uc.appendLog(ctx, documentID, domain.StagePipeline, domain.OutcomeFailed, cause.Error())
}

// appendLog records one audit entry. Audit persistence failures are logged
// and swallowed; the trail must never take the pipeline down with it.
func (uc *ProcessDocumentUseCase) appendLog(ctx context.Context, documentID string, stage domain.Stage, outcome domain.Outcome, message string) {
	entry := &domain.ProcessingLogEntry{
		DocumentID: documentID,
		Stage:      stage,
		Outcome:    outcome,
		Message:    message,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.auditLog.Append(ctx, entry); err != nil {
		uc.logger.Warn("append processing log failed",
			"document_id", documentID,
			"stage", stage,
			"outcome", outcome,
			"error", err,
		)
	}
}

func (uc *ProcessDocumentUseCase) observe(stage domain.Stage, duration time.Duration, err error) {
	if uc.ObserveStage != nil {
		uc.ObserveStage(stage, duration, err)
	}
}
