// Package webhook POSTs routing notifications to a configured HTTP target.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/vmalikov/docflow/internal/core/domain"
	"github.com/vmalikov/docflow/internal/infrastructure/resilience"
)

type Channel struct {
	url        string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(url string, timeout time.Duration, executor *resilience.Executor) *Channel {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Channel{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		executor:   executor,
	}
}

func (c *Channel) Name() string { return "webhook" }

type payload struct {
	Document struct {
		ID               string `json:"id"`
		OriginalFilename string `json:"original_filename"`
		Category         string `json:"category,omitempty"`
	} `json:"document"`
	Routing   domain.RoutingDecision `json:"routing"`
	Summary   string                 `json:"summary,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (c *Channel) Notify(ctx context.Context, decision domain.RoutingDecision, doc *domain.Document, summary string) error {
	var body payload
	body.Document.ID = doc.ID
	body.Document.OriginalFilename = doc.OriginalFilename
	body.Document.Category = doc.Category
	body.Routing = decision
	body.Summary = summary
	body.Timestamp = time.Now().UTC()

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	post := func(callCtx context.Context) error {
		req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.url, bytes.NewReader(raw))
		if err != nil {
			return fmt.Errorf("build webhook request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("post webhook: %w", err)
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

		if resp.StatusCode >= http.StatusMultipleChoices {
			return &statusError{StatusCode: resp.StatusCode, Status: resp.Status}
		}
		return nil
	}

	if c.executor != nil {
		return c.executor.Execute(ctx, "webhook.post", post, classifyWebhookError)
	}
	return post(ctx)
}

type statusError struct {
	StatusCode int
	Status     string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("webhook status: %s", e.Status)
}

func classifyWebhookError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}

	var statusErr *statusError
	if errors.As(err, &statusErr) {
		retryable := statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= http.StatusInternalServerError
		return resilience.ErrorClassification{Retryable: retryable, RecordFailure: retryable}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}
	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}
