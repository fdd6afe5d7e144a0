package classify

import (
	"context"
	"encoding/gob"
	"fmt"
	"math"
	"os"

	"github.com/vmalikov/docflow/internal/core/domain"
	"github.com/vmalikov/docflow/internal/infrastructure/textproc"
)

// BayesModel is a multinomial naive Bayes classifier over term-frequency
// vectors of normalized tokens. The whole model is one opaque gob blob,
// keyed by its category set.
type BayesModel struct {
	Categories     []string
	Vocabulary     map[string]int
	ClassLogPrior  []float64
	FeatureLogProb [][]float64
}

// TrainingSample pairs raw text with its labeled category.
type TrainingSample struct {
	Text     string
	Category string
}

// TrainBayes fits the model with Laplace smoothing. Categories keeps the
// caller's enumeration order; samples with unknown labels are rejected.
func TrainBayes(categories []string, samples []TrainingSample) (*BayesModel, error) {
	if len(categories) == 0 || len(samples) == 0 {
		return nil, fmt.Errorf("train bayes: categories and samples are required")
	}
	classIdx := make(map[string]int, len(categories))
	for i, c := range categories {
		classIdx[c] = i
	}

	vocab := make(map[string]int)
	tokenized := make([][]string, len(samples))
	for i, sample := range samples {
		if _, ok := classIdx[sample.Category]; !ok {
			return nil, fmt.Errorf("train bayes: unknown category %q", sample.Category)
		}
		tokens := textproc.Normalize(sample.Text)
		tokenized[i] = tokens
		for _, tok := range tokens {
			if _, ok := vocab[tok]; !ok {
				vocab[tok] = len(vocab)
			}
		}
	}
	if len(vocab) == 0 {
		return nil, fmt.Errorf("train bayes: no usable tokens in samples")
	}

	classCounts := make([]float64, len(categories))
	termCounts := make([][]float64, len(categories))
	termTotals := make([]float64, len(categories))
	for i := range termCounts {
		termCounts[i] = make([]float64, len(vocab))
	}
	for i, sample := range samples {
		ci := classIdx[sample.Category]
		classCounts[ci]++
		for _, tok := range tokenized[i] {
			termCounts[ci][vocab[tok]]++
			termTotals[ci]++
		}
	}

	model := &BayesModel{
		Categories:     append([]string(nil), categories...),
		Vocabulary:     vocab,
		ClassLogPrior:  make([]float64, len(categories)),
		FeatureLogProb: make([][]float64, len(categories)),
	}
	total := float64(len(samples))
	vocabSize := float64(len(vocab))
	for ci := range categories {
		prior := classCounts[ci] / total
		if prior == 0 {
			prior = 1 / (total + float64(len(categories)))
		}
		model.ClassLogPrior[ci] = math.Log(prior)
		model.FeatureLogProb[ci] = make([]float64, len(vocab))
		for ti := range model.FeatureLogProb[ci] {
			model.FeatureLogProb[ci][ti] = math.Log((termCounts[ci][ti] + 1) / (termTotals[ci] + vocabSize))
		}
	}
	return model, nil
}

// Predict returns the argmax category and the full posterior distribution.
func (m *BayesModel) Predict(tokens []string) (string, map[string]float64) {
	scores := make([]float64, len(m.Categories))
	copy(scores, m.ClassLogPrior)
	for _, tok := range tokens {
		ti, ok := m.Vocabulary[tok]
		if !ok {
			continue
		}
		for ci := range scores {
			scores[ci] += m.FeatureLogProb[ci][ti]
		}
	}

	// Log scores to a normalized distribution.
	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}
	sum := 0.0
	probs := make([]float64, len(scores))
	for i, s := range scores {
		probs[i] = math.Exp(s - maxScore)
		sum += probs[i]
	}

	best := 0
	dist := make(map[string]float64, len(scores))
	for i := range probs {
		probs[i] /= sum
		dist[m.Categories[i]] = probs[i]
		if probs[i] > probs[best] {
			best = i
		}
	}
	return m.Categories[best], dist
}

func (m *BayesModel) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create model file: %w", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(m); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	return nil
}

// LoadBayesModel reads a model blob from disk. A missing path is not an
// error to the caller; bootstrap treats it as "no model configured".
func LoadBayesModel(path string) (*BayesModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer f.Close()
	var model BayesModel
	if err := gob.NewDecoder(f).Decode(&model); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if len(model.Categories) == 0 || len(model.Vocabulary) == 0 {
		return nil, fmt.Errorf("model blob is empty")
	}
	return &model, nil
}

// ModelStrategy classifies with a pre-trained Bayes model when one is
// loaded; otherwise it is unavailable and the chain moves on.
type ModelStrategy struct {
	model *BayesModel
}

func NewModelStrategy(model *BayesModel) *ModelStrategy {
	return &ModelStrategy{model: model}
}

func (s *ModelStrategy) Method() domain.ClassifyMethod { return domain.MethodMLModel }

func (s *ModelStrategy) Attempt(_ context.Context, text string) (domain.ClassificationResult, error) {
	if s.model == nil {
		return domain.ClassificationResult{}, domain.WrapError(domain.ErrUnavailable, "bayes classify", fmt.Errorf("no trained model loaded"))
	}
	tokens := textproc.Normalize(text)
	if len(tokens) == 0 {
		return domain.ClassificationResult{}, domain.WrapError(domain.ErrUnavailable, "bayes classify", fmt.Errorf("no usable tokens"))
	}

	category, dist := s.model.Predict(tokens)
	return domain.ClassificationResult{
		Category:      category,
		Confidence:    dist[category],
		Probabilities: dist,
	}, nil
}
