// Package metrics provides Prometheus metrics for the recommendation
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Classification metrics
	classifications  *prometheus.CounterVec
	severityObserved prometheus.Histogram

	// Recommendation metrics
	recommendationsServed prometheus.Counter
	fallbacksServed       prometheus.Counter
	emptyCatalog          prometheus.Counter
	scoringLatency        prometheus.Histogram

	// Feedback sink metrics
	feedbackEnqueued  prometheus.Counter
	feedbackDuplicate prometheus.Counter
	feedbackDropped   prometheus.Counter
	feedbackProcessed prometheus.Counter
	feedbackErrors    prometheus.Counter
	feedbackQueueSize prometheus.Gauge
	workerCount       prometheus.Gauge

	// Store metrics
	catalogSize  prometheus.Gauge
	profileCount prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration, then
// applies options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "serene",
		subsystem:        "recommend",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.classifications = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "classifications_total",
		Help:      "Classifications performed, by primary concern and urgency.",
	}, []string{"concern", "urgency"})

	m.severityObserved = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "severity_score",
		Help:      "Distribution of severity scores.",
		Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
	})

	m.recommendationsServed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_served_total",
		Help:      "Recommendation lists served from the scoring engine.",
	})

	m.fallbacksServed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fallbacks_served_total",
		Help:      "Recommendation lists served from the fallback policy.",
	})

	m.emptyCatalog = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "empty_catalog_total",
		Help:      "Requests that failed because no catalog was available.",
	})

	m.scoringLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_latency_ms",
		Help:      "Classify-and-rank latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	})

	m.feedbackEnqueued = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feedback_enqueued_total",
		Help:      "Feedback events accepted into the sink.",
	})

	m.feedbackDuplicate = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feedback_duplicate_total",
		Help:      "Feedback events rejected as duplicates.",
	})

	m.feedbackDropped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feedback_dropped_total",
		Help:      "Feedback events dropped on backpressure.",
	})

	m.feedbackProcessed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feedback_processed_total",
		Help:      "Feedback events applied by workers.",
	})

	m.feedbackErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feedback_errors_total",
		Help:      "Feedback events that failed to apply.",
	})

	m.feedbackQueueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feedback_queue_size",
		Help:      "Current feedback queue depth.",
	})

	m.workerCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Running feedback workers.",
	})

	m.catalogSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_size",
		Help:      "Entries in the meditation catalog.",
	})

	m.profileCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "profile_count",
		Help:      "Stored preference profiles.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method, and status code.",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Allocated heap bytes.",
	})

	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutine_count",
		Help:      "Running goroutines.",
	})

	m.systemGCPauseTime = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "gc_pause_ms",
		Help:      "Average GC pause time in milliseconds.",
		Buckets:   m.histogramBuckets,
	})
}

// Package-level helpers on the global manager.

// RecordClassification counts one classification result.
func RecordClassification(concern, urgency string, severity float64) {
	if globalManager.enabled {
		globalManager.classifications.WithLabelValues(concern, urgency).Inc()
		globalManager.severityObserved.Observe(severity)
	}
}

// RecordRecommendationServed counts one ranked list served.
func RecordRecommendationServed() {
	if globalManager.enabled {
		globalManager.recommendationsServed.Inc()
	}
}

// RecordFallbackServed counts one fallback list served.
func RecordFallbackServed() {
	if globalManager.enabled {
		globalManager.fallbacksServed.Inc()
	}
}

// RecordEmptyCatalog counts one request with no catalog available.
func RecordEmptyCatalog() {
	if globalManager.enabled {
		globalManager.emptyCatalog.Inc()
	}
}

// RecordScoringLatency observes one classify-and-rank duration.
func RecordScoringLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.scoringLatency.Observe(latencyMs)
	}
}

// RecordFeedbackEnqueued counts one accepted feedback event.
func RecordFeedbackEnqueued() {
	if globalManager.enabled {
		globalManager.feedbackEnqueued.Inc()
	}
}

// RecordFeedbackDuplicate counts one duplicate feedback event.
func RecordFeedbackDuplicate() {
	if globalManager.enabled {
		globalManager.feedbackDuplicate.Inc()
	}
}

// RecordFeedbackDropped counts one event dropped on backpressure.
func RecordFeedbackDropped() {
	if globalManager.enabled {
		globalManager.feedbackDropped.Inc()
	}
}

// RecordFeedbackProcessed counts one event applied by a worker.
func RecordFeedbackProcessed() {
	if globalManager.enabled {
		globalManager.feedbackProcessed.Inc()
	}
}

// RecordFeedbackError counts one event that failed to apply.
func RecordFeedbackError() {
	if globalManager.enabled {
		globalManager.feedbackErrors.Inc()
	}
}

// UpdateFeedbackQueueSize sets the current queue depth.
func UpdateFeedbackQueueSize(size int) {
	if globalManager.enabled {
		globalManager.feedbackQueueSize.Set(float64(size))
	}
}

// UpdateWorkerCount sets the running worker count.
func UpdateWorkerCount(count int) {
	if globalManager.enabled {
		globalManager.workerCount.Set(float64(count))
	}
}

// UpdateCatalogSize sets the catalog entry count.
func UpdateCatalogSize(count int) {
	if globalManager.enabled {
		globalManager.catalogSize.Set(float64(count))
	}
}

// UpdateProfileCount sets the stored profile count.
func UpdateProfileCount(count int) {
	if globalManager.enabled {
		globalManager.profileCount.Set(float64(count))
	}
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration observes one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// UpdateSystemMemoryUsage sets the allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the running goroutine count.
func UpdateSystemGoroutineCount(count int) {
	if globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime observes an average GC pause duration.
func RecordSystemGCPauseTime(pauseMs float64) {
	if globalManager.enabled {
		globalManager.systemGCPauseTime.Observe(pauseMs)
	}
}

// GetRegistry exposes the custom registry for the /metrics handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
