// Package extractor dispatches text extraction by file extension. Each
// format lives in its own subpackage; the dispatcher only picks one.
package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vmalikov/docflow/internal/core/domain"
	"github.com/vmalikov/docflow/internal/core/ports"
)

type Dispatcher struct {
	byExtension map[string]ports.TextExtractor
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{byExtension: make(map[string]ports.TextExtractor)}
}

// Register maps one or more extensions (".pdf") to an extractor.
func (d *Dispatcher) Register(sub ports.TextExtractor, extensions ...string) *Dispatcher {
	for _, ext := range extensions {
		d.byExtension[strings.ToLower(ext)] = sub
	}
	return d
}

func (d *Dispatcher) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	ext := strings.ToLower(filepath.Ext(doc.OriginalFilename))
	sub, ok := d.byExtension[ext]
	if !ok {
		return "", domain.WrapError(domain.ErrInvalidInput, "extract text",
			fmt.Errorf("unsupported file format %q", ext))
	}
	return sub.Extract(ctx, doc)
}
