package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vmalikov/docflow/internal/core/domain"
)

func testClient(baseURL string) *Client {
	return New(Config{BaseURL: baseURL, Model: "test-model", RequestsPerMin: 600}, nil)
}

func TestClassifyTextParsesStructuredVerdict(t *testing.T) {
	var capturedPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		capturedPrompt, _ = payload["prompt"].(string)
		_, _ = w.Write([]byte(`{"response":"{\"category\":\"Invoice\",\"confidence\":0.93,\"reasoning\":\"mentions amounts due\"}"}`))
	}))
	defer server.Close()

	result, err := testClient(server.URL).ClassifyText(context.Background(),
		"invoice with a total amount due", []string{"invoice", "contract", "other"})
	if err != nil {
		t.Fatalf("ClassifyText() error = %v", err)
	}
	if result.Category != "invoice" {
		t.Fatalf("expected lowercased category invoice, got %s", result.Category)
	}
	if result.Confidence != 0.93 {
		t.Fatalf("expected confidence 0.93, got %v", result.Confidence)
	}
	if !strings.Contains(capturedPrompt, "invoice, contract, other") {
		t.Fatalf("prompt must enumerate categories, got %s", capturedPrompt)
	}
}

func TestClassifyTextTrimsChatterAroundJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"response":"Sure, here you go: {\"category\":\"contract\",\"confidence\":0.7,\"reasoning\":\"terms\"} hope that helps"}`))
	}))
	defer server.Close()

	result, err := testClient(server.URL).ClassifyText(context.Background(), "agreement text", []string{"contract"})
	if err != nil {
		t.Fatalf("ClassifyText() error = %v", err)
	}
	if result.Category != "contract" {
		t.Fatalf("expected contract, got %s", result.Category)
	}
}

func TestGenerateTextReturnsTrimmedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"response":"  a summary  "}`))
	}))
	defer server.Close()

	out, err := testClient(server.URL).GenerateText(context.Background(), "summarize this")
	if err != nil {
		t.Fatalf("GenerateText() error = %v", err)
	}
	if out != "a summary" {
		t.Fatalf("expected trimmed response, got %q", out)
	}
}

func TestGenerateMarksServerErrorsTemporary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := testClient(server.URL).GenerateText(context.Background(), "prompt")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected ErrTemporary for 503, got %v", err)
	}
	if !strings.Contains(err.Error(), "model loading") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}
