package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/vmalikov/docflow/internal/infrastructure/textproc"
)

// maxAbstractiveInput bounds the text handed to the generation model.
const maxAbstractiveInput = 1024

func (e *Engine) abstractive(ctx context.Context, text string) (string, error) {
	if e.generator == nil {
		return "", fmt.Errorf("no generation model configured")
	}

	input := textproc.Truncate(text, maxAbstractiveInput)

	out, err := e.generator.GenerateText(ctx, buildSummaryPrompt(input))
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("model returned empty summary")
	}
	return out, nil
}

func buildSummaryPrompt(text string) string {
	return `Summarize the document below in 2-4 sentences.
Return only the summary text, no preamble.

Document:
` + text
}
