// Package httpadapter exposes the ingestion and read API.
package httpadapter

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/vmalikov/docflow/internal/core/ports"
	"github.com/vmalikov/docflow/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	ingestor ports.DocumentIngestor
	reader   ports.DocumentReader
	queue    ports.MessageQueue
	metrics  *metrics.HTTPServerMetrics
}

func NewRouter(
	ingestor ports.DocumentIngestor,
	reader ports.DocumentReader,
	queue ports.MessageQueue,
	httpMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		ingestor: ingestor,
		reader:   reader,
		queue:    queue,
		metrics:  httpMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.uploadDocument)
	mux.HandleFunc("/v1/documents/", rt.documentSubtree)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	doc, err := rt.ingestor.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}

	if rt.metrics != nil {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
		rt.metrics.RecordUpload(serviceName, ext, fileHeader.Size)
	}
	writeJSON(w, http.StatusAccepted, doc)
}

// documentSubtree dispatches /v1/documents/{id}, /{id}/logs and /{id}/process.
func (rt *Router) documentSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "document id is required")
		return
	}

	switch action {
	case "":
		rt.getDocument(w, r, id)
	case "logs":
		rt.getDocumentLogs(w, r, id)
	case "process":
		rt.requestProcessing(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "unknown resource")
	}
}

func (rt *Router) getDocument(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	doc, err := rt.reader.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) getDocumentLogs(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entries, err := rt.reader.ListLogs(r.Context(), id)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"document_id": id,
		"entries":     entries,
	})
}

// requestProcessing re-queues a stored document. The pipeline runs in the
// worker; the API only acknowledges the request.
func (rt *Router) requestProcessing(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if _, err := rt.reader.GetByID(r.Context(), id); err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}
	if err := rt.queue.PublishDocumentQueued(r.Context(), id); err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"document_id": id,
		"status":      "queued",
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
