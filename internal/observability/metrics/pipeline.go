package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PipelineMetrics covers the worker side: per-document outcomes, per-stage
// outcomes and durations, and queue lag.
type PipelineMetrics struct {
	registry *prometheus.Registry

	processTotal    *prometheus.CounterVec
	processDuration *prometheus.HistogramVec
	processInFlight prometheus.Gauge
	stageTotal      *prometheus.CounterVec
	stageDuration   *prometheus.HistogramVec
	queueLag        *prometheus.HistogramVec
}

func NewPipelineMetrics(service string) *PipelineMetrics {
	registry := prometheus.NewRegistry()

	processTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docflow",
			Subsystem: "pipeline",
			Name:      "document_process_total",
			Help:      "Total processed documents by final status.",
		},
		[]string{"service", "status"},
	)
	processDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docflow",
			Subsystem: "pipeline",
			Name:      "document_process_duration_seconds",
			Help:      "End-to-end document processing duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	processInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docflow",
			Subsystem: "pipeline",
			Name:      "document_process_in_flight",
			Help:      "Number of in-flight document pipeline runs.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	stageTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docflow",
			Subsystem: "pipeline",
			Name:      "stage_total",
			Help:      "Total stage executions by stage and outcome.",
		},
		[]string{"service", "stage", "outcome"},
	)
	stageDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docflow",
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Stage execution duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "stage"},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docflow",
			Subsystem: "pipeline",
			Name:      "queue_lag_seconds",
			Help:      "Delay between document upload and processing start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)

	registry.MustRegister(processTotal, processDuration, processInFlight, stageTotal, stageDuration, queueLag)

	return &PipelineMetrics{
		registry:        registry,
		processTotal:    processTotal,
		processDuration: processDuration,
		processInFlight: processInFlight,
		stageTotal:      stageTotal,
		stageDuration:   stageDuration,
		queueLag:        queueLag,
	}
}

func (m *PipelineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PipelineMetrics) StartDocument() {
	m.processInFlight.Inc()
}

func (m *PipelineMetrics) FinishDocument(service string, duration time.Duration, err error) {
	m.processInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.processTotal.WithLabelValues(service, status).Inc()
	m.processDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *PipelineMetrics) ObserveStage(service, stage string, duration time.Duration, err error) {
	outcome := "completed"
	if err != nil {
		outcome = "failed"
	}
	m.stageTotal.WithLabelValues(service, stage, outcome).Inc()
	m.stageDuration.WithLabelValues(service, stage).Observe(duration.Seconds())
}

func (m *PipelineMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}
