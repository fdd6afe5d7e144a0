package extractor

import (
	"context"
	"testing"

	"github.com/vmalikov/docflow/internal/core/domain"
)

type subExtractorFake struct {
	text  string
	calls int
}

func (f *subExtractorFake) Extract(context.Context, *domain.Document) (string, error) {
	f.calls++
	return f.text, nil
}

func TestDispatcherPicksByExtension(t *testing.T) {
	txt := &subExtractorFake{text: "plain"}
	pdf := &subExtractorFake{text: "pdf"}
	dispatcher := NewDispatcher().
		Register(txt, ".txt", ".md").
		Register(pdf, ".pdf")

	got, err := dispatcher.Extract(context.Background(), &domain.Document{OriginalFilename: "Report.PDF"})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "pdf" || pdf.calls != 1 || txt.calls != 0 {
		t.Fatalf("expected pdf extractor selected case-insensitively, got %q", got)
	}

	got, err = dispatcher.Extract(context.Background(), &domain.Document{OriginalFilename: "notes.md"})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "plain" {
		t.Fatalf("expected plaintext extractor for .md, got %q", got)
	}
}

func TestDispatcherRejectsUnknownFormat(t *testing.T) {
	dispatcher := NewDispatcher().Register(&subExtractorFake{}, ".txt")

	_, err := dispatcher.Extract(context.Background(), &domain.Document{OriginalFilename: "image.png"})
	if err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
