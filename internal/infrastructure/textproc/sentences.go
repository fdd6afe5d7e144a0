package textproc

import "strings"

// SplitSentences splits text on terminal punctuation, preserving the
// original sentence text and order. Deterministic: the summarizers rely on
// identical input producing identical splits.
func SplitSentences(text string) []string {
	text = CollapseWhitespace(text)
	if text == "" {
		return nil
	}

	out := make([]string, 0, 16)
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		b.WriteRune(runes[i])
		if !isTerminal(runes[i]) {
			continue
		}
		// Swallow runs like "?!" or "..." into the same sentence.
		for i+1 < len(runes) && isTerminal(runes[i+1]) {
			i++
			b.WriteRune(runes[i])
		}
		if sentence := strings.TrimSpace(b.String()); sentence != "" {
			out = append(out, sentence)
		}
		b.Reset()
	}
	if sentence := strings.TrimSpace(b.String()); sentence != "" {
		out = append(out, sentence)
	}
	return out
}

// CollapseWhitespace folds whitespace runs into single spaces.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// WordCount counts whitespace-separated words; the summarization engine
// uses it for strategy auto-selection.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
