package summarize

import (
	"math"
	"strings"

	"github.com/vmalikov/docflow/internal/infrastructure/textproc"
)

// keywordSummary scores sentences by mean keyword importance, where a
// word's importance is its term frequency times log(total/frequency) as the
// inverse term.
func keywordSummary(text string, n int) string {
	sentences := textproc.SplitSentences(text)
	if len(sentences) <= n {
		return strings.Join(sentences, " ")
	}

	freq := termFrequencies(text)
	total := 0.0
	for _, f := range freq {
		total += f
	}
	if total == 0 {
		return extractiveSummary(text, n)
	}

	importance := make(map[string]float64, len(freq))
	for tok, f := range freq {
		tf := f / total
		importance[tok] = tf * math.Log(total/f)
	}

	scores := make([]float64, len(sentences))
	for i, sentence := range sentences {
		scores[i] = meanTokenScore(sentence, importance)
	}
	return joinTopSentences(sentences, scores, n)
}
