package summarize

import (
	"sort"
	"strings"

	"github.com/vmalikov/docflow/internal/infrastructure/textproc"
)

// extractiveSummary scores sentences by mean max-normalized term frequency
// of their content words and keeps the top n, in document order.
func extractiveSummary(text string, n int) string {
	sentences := textproc.SplitSentences(text)
	if len(sentences) <= n {
		return strings.Join(sentences, " ")
	}

	freq := termFrequencies(text)
	normalizeByMax(freq)

	scores := make([]float64, len(sentences))
	for i, sentence := range sentences {
		scores[i] = meanTokenScore(sentence, freq)
	}
	return joinTopSentences(sentences, scores, n)
}

func termFrequencies(text string) map[string]float64 {
	freq := make(map[string]float64)
	for _, tok := range textproc.Normalize(text) {
		freq[tok]++
	}
	return freq
}

func normalizeByMax(freq map[string]float64) {
	maxFreq := 0.0
	for _, f := range freq {
		if f > maxFreq {
			maxFreq = f
		}
	}
	if maxFreq == 0 {
		return
	}
	for tok := range freq {
		freq[tok] /= maxFreq
	}
}

func meanTokenScore(sentence string, weights map[string]float64) float64 {
	tokens := textproc.Normalize(sentence)
	if len(tokens) == 0 {
		return 0
	}
	sum := 0.0
	for _, tok := range tokens {
		sum += weights[tok]
	}
	return sum / float64(len(tokens))
}

// joinTopSentences picks the n highest-scoring sentences and joins them in
// original document order, never score order. Ties keep the earlier
// sentence.
func joinTopSentences(sentences []string, scores []float64, n int) string {
	idx := make([]int, len(sentences))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	selected := idx[:n]
	sort.Ints(selected)

	parts := make([]string, 0, n)
	for _, i := range selected {
		parts = append(parts, sentences[i])
	}
	return strings.Join(parts, " ")
}
