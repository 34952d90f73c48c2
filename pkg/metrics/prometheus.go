// Package metrics provides Prometheus metrics for the bounty board service.
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
	registry         prometheus.Registerer

	// Submission pipeline
	submissions          prometheus.Counter
	submissionsFailed    prometheus.Counter
	screenshotsProcessed prometheus.Counter
	screenshotsFailed    prometheus.Counter
	ocrLatency           prometheus.Histogram
	mergeOverlaps        prometheus.Counter

	// Ledger
	ledgerPlayers prometheus.Gauge
	ledgerSaves   prometheus.Counter
	corrections   prometheus.Counter
	resets        prometheus.Counter

	// Operational health
	queueDepth     prometheus.Gauge
	goroutineCount prometheus.Gauge
	memoryUsage    prometheus.Gauge

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "bounty",
		subsystem:        "board",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.submissions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_total",
		Help:      "Total number of submissions applied to the ledger",
	})

	m.submissionsFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_failed_total",
		Help:      "Total number of submissions that produced no ledger change",
	})

	m.screenshotsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "screenshots_processed_total",
		Help:      "Total number of screenshots recognized and parsed",
	})

	m.screenshotsFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "screenshots_failed_total",
		Help:      "Total number of screenshots dropped during recognition or parsing",
	})

	m.ocrLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ocr_latency_milliseconds",
		Help:      "Histogram of text recognition latency per screenshot in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.mergeOverlaps = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "merge_overlaps_total",
		Help:      "Total number of duplicate names skipped while merging screenshots",
	})

	m.ledgerPlayers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ledger_players",
		Help:      "Current number of players holding a bounty balance",
	})

	m.ledgerSaves = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ledger_saves_total",
		Help:      "Total number of successful ledger persistence writes",
	})

	m.corrections = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "corrections_total",
		Help:      "Total number of last-game corrections applied",
	})

	m.resets = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "resets_total",
		Help:      "Total number of full board resets",
	})

	m.queueDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "task_queue_depth",
		Help:      "Current number of pending ledger mutation tasks",
	})

	m.goroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.memoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordSubmission increments the applied submissions counter.
func RecordSubmission() {
	globalManager.submissions.Inc()
}

// RecordSubmissionFailed increments the failed submissions counter.
func RecordSubmissionFailed() {
	globalManager.submissionsFailed.Inc()
}

// RecordScreenshotProcessed increments the processed screenshots counter.
func RecordScreenshotProcessed() {
	globalManager.screenshotsProcessed.Inc()
}

// RecordScreenshotFailed increments the dropped screenshots counter.
func RecordScreenshotFailed() {
	globalManager.screenshotsFailed.Inc()
}

// ObserveOCRLatency records one recognition latency in milliseconds.
func ObserveOCRLatency(latencyMs float64) {
	globalManager.ocrLatency.Observe(latencyMs)
}

// RecordMergeOverlaps adds the number of duplicates skipped by one merge.
func RecordMergeOverlaps(n int) {
	globalManager.mergeOverlaps.Add(float64(n))
}

// UpdateLedgerPlayers sets the current player count.
func UpdateLedgerPlayers(count int) {
	globalManager.ledgerPlayers.Set(float64(count))
}

// RecordLedgerSave increments the persistence write counter.
func RecordLedgerSave() {
	globalManager.ledgerSaves.Inc()
}

// RecordCorrection increments the last-game corrections counter.
func RecordCorrection() {
	globalManager.corrections.Inc()
}

// RecordReset increments the board resets counter.
func RecordReset() {
	globalManager.resets.Inc()
}

// UpdateQueueDepth sets the pending mutation task count.
func UpdateQueueDepth(depth int) {
	globalManager.queueDepth.Set(float64(depth))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.goroutineCount.Set(float64(count))
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.memoryUsage.Set(float64(bytes))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
