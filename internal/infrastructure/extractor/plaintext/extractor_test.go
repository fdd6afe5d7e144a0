package plaintext

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/vmalikov/docflow/internal/core/domain"
)

type storageFake struct {
	content string
}

func (f *storageFake) Save(context.Context, string, io.Reader) error { return nil }

func (f *storageFake) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(f.content)), nil
}

func TestExtractTrimsUTF8Text(t *testing.T) {
	extractor := NewExtractor(&storageFake{content: "  hello world \n"})

	got, err := extractor.Extract(context.Background(), &domain.Document{StoragePath: "key", OriginalFilename: "a.txt"})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "hello world" {
		t.Fatalf("expected trimmed text, got %q", got)
	}
}

func TestExtractRejectsBinaryContent(t *testing.T) {
	extractor := NewExtractor(&storageFake{content: "\xff\xfe\x00binary"})

	_, err := extractor.Extract(context.Background(), &domain.Document{StoragePath: "key", OriginalFilename: "a.txt"})
	if err == nil {
		t.Fatalf("expected error for non-utf8 content")
	}
}
