package ollama

import "strings"

func buildClassifyPrompt(text string, categories []string) string {
	return `You are a document classifier.
Classify the document into exactly one of these categories: ` + strings.Join(categories, ", ") + `.
Return a strict JSON object with keys:
category (one of the listed values), confidence (number from 0 to 1), reasoning (one short sentence).
No markdown, no extra keys.

Document:
` + text
}
