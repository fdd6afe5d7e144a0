// Package ollama talks to an Ollama-compatible generation endpoint. It
// backs the llm_api classification strategy and the abstractive summary
// strategy. All calls go through a shared rate limiter and the resilience
// executor.
package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/vmalikov/docflow/internal/core/domain"
	"github.com/vmalikov/docflow/internal/infrastructure/resilience"
)

type Config struct {
	BaseURL        string
	Model          string
	Timeout        time.Duration
	RequestsPerMin int
}

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
	executor   *resilience.Executor
}

func New(cfg Config, executor *resilience.Executor) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerMin <= 0 {
		cfg.RequestsPerMin = 60
	}

	perSecond := rate.Limit(float64(cfg.RequestsPerMin) / 60.0)
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(perSecond, cfg.RequestsPerMin),
		executor:   executor,
	}
}

// ClassifyText asks the model for a strict JSON verdict constrained to the
// given category enumeration.
func (c *Client) ClassifyText(ctx context.Context, text string, categories []string) (domain.ClassificationResult, error) {
	respText, err := c.generate(ctx, "classify", map[string]any{
		"model":  c.model,
		"prompt": buildClassifyPrompt(text, categories),
		"stream": false,
		"format": "json",
	})
	if err != nil {
		return domain.ClassificationResult{}, err
	}

	var parsed struct {
		Category   string  `json:"category"`
		Confidence float64 `json:"confidence"`
		Reasoning  string  `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(extractJSONObject(respText)), &parsed); err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("parse classification json: %w", err)
	}

	return domain.ClassificationResult{
		Category:   strings.ToLower(strings.TrimSpace(parsed.Category)),
		Confidence: parsed.Confidence,
		Reason:     strings.TrimSpace(parsed.Reasoning),
	}, nil
}

// GenerateText runs a free-form prompt and returns the trimmed response.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, "generate", map[string]any{
		"model":  c.model,
		"prompt": prompt,
		"stream": false,
	})
}

func (c *Client) generate(ctx context.Context, operation string, reqBody map[string]any) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait for rate limiter: %w", err)
	}

	var response struct {
		Response string `json:"response"`
	}
	call := func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/api/generate", reqBody, &response, operation)
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "ollama."+operation, call, classifyOllamaError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", wrapTemporaryIfNeeded("ollama "+operation, err)
	}
	return strings.TrimSpace(response.Response), nil
}

// extractJSONObject trims chatter around the first JSON object in a model
// response. Some models wrap the object in prose despite the format hint.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
