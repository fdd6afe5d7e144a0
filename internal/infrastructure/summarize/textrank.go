package summarize

import (
	"math"
	"strings"

	"github.com/vmalikov/docflow/internal/infrastructure/textproc"
)

const (
	rankDamping    = 0.85
	rankIterations = 30
	rankEpsilon    = 1e-4
)

// graphRankSummary ranks sentences over a similarity graph (TextRank
// style) and keeps the top n in document order. Returns "" when the graph
// is degenerate (no sentence shares content words with another) so the
// engine can fall back to extractive.
func graphRankSummary(text string, n int) string {
	sentences := textproc.SplitSentences(text)
	if len(sentences) <= n {
		return strings.Join(sentences, " ")
	}

	tokenSets := make([]map[string]bool, len(sentences))
	for i, sentence := range sentences {
		set := make(map[string]bool)
		for _, tok := range textproc.Normalize(sentence) {
			set[tok] = true
		}
		tokenSets[i] = set
	}

	size := len(sentences)
	sim := make([][]float64, size)
	rowSums := make([]float64, size)
	connected := false
	for i := range sim {
		sim[i] = make([]float64, size)
		for j := range sim[i] {
			if i == j {
				continue
			}
			s := sentenceSimilarity(tokenSets[i], tokenSets[j])
			sim[i][j] = s
			rowSums[i] += s
			if s > 0 {
				connected = true
			}
		}
	}
	if !connected {
		return ""
	}

	ranks := make([]float64, size)
	for i := range ranks {
		ranks[i] = 1.0 / float64(size)
	}
	next := make([]float64, size)
	for iter := 0; iter < rankIterations; iter++ {
		delta := 0.0
		for i := 0; i < size; i++ {
			sum := 0.0
			for j := 0; j < size; j++ {
				if j == i || sim[j][i] == 0 || rowSums[j] == 0 {
					continue
				}
				sum += ranks[j] * sim[j][i] / rowSums[j]
			}
			next[i] = (1-rankDamping)/float64(size) + rankDamping*sum
			delta += math.Abs(next[i] - ranks[i])
		}
		copy(ranks, next)
		if delta < rankEpsilon {
			break
		}
	}

	return joinTopSentences(sentences, ranks, n)
}

// sentenceSimilarity is shared-token overlap damped by sentence lengths,
// so long sentences do not dominate purely by size.
func sentenceSimilarity(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	overlap := 0
	for tok := range a {
		if b[tok] {
			overlap++
		}
	}
	if overlap == 0 {
		return 0
	}
	denom := math.Log(float64(1+len(a))) + math.Log(float64(1+len(b)))
	if denom == 0 {
		return 0
	}
	return float64(overlap) / denom
}
