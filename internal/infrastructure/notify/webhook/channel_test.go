package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vmalikov/docflow/internal/core/domain"
)

func TestNotifyPostsDecisionPayload(t *testing.T) {
	var captured payload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("expected json content type, got %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	channel := New(server.URL, 5*time.Second, nil)
	doc := &domain.Document{ID: "doc-1", OriginalFilename: "invoice.pdf", Category: "invoice"}
	decision := domain.RoutingDecision{
		DepartmentID: "finance",
		Priority:     domain.PriorityHigh,
		Confidence:   0.8,
		DecidedAt:    time.Now().UTC(),
	}

	if err := channel.Notify(context.Background(), decision, doc, "short summary"); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if captured.Document.ID != "doc-1" || captured.Document.OriginalFilename != "invoice.pdf" {
		t.Fatalf("unexpected document payload: %+v", captured.Document)
	}
	if captured.Routing.DepartmentID != "finance" {
		t.Fatalf("unexpected routing payload: %+v", captured.Routing)
	}
	if captured.Summary != "short summary" {
		t.Fatalf("unexpected summary %q", captured.Summary)
	}
}

func TestNotifyReportsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	channel := New(server.URL, 5*time.Second, nil)
	err := channel.Notify(context.Background(), domain.RoutingDecision{}, &domain.Document{ID: "doc-1"}, "")
	if err == nil {
		t.Fatalf("expected error for 500 response")
	}
}

func TestClassifyWebhookErrorRetrysOnServerStatus(t *testing.T) {
	class := classifyWebhookError(&statusError{StatusCode: http.StatusBadGateway, Status: "502 Bad Gateway"})
	if !class.Retryable || !class.RecordFailure {
		t.Fatalf("502 must be retryable and recorded, got %+v", class)
	}

	class = classifyWebhookError(&statusError{StatusCode: http.StatusBadRequest, Status: "400 Bad Request"})
	if class.Retryable {
		t.Fatalf("400 must not be retryable, got %+v", class)
	}

	class = classifyWebhookError(context.Canceled)
	if class.Retryable || class.RecordFailure {
		t.Fatalf("context cancellation must not count, got %+v", class)
	}
}
