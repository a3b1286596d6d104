// Package metrics provides Prometheus metrics for the podium service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the podium service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Engine metrics: the evaluation pipeline is the product.
	evaluationsTotal   prometheus.Counter
	evaluationDuration prometheus.Histogram
	refreshPasses      prometheus.Counter
	refreshDuration    prometheus.Histogram

	// Cache metrics.
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	cacheInvalidations prometheus.Counter

	// Result-set scale.
	participantsTotal  prometheus.Gauge
	competitionsTotal  prometheus.Gauge
	achievementsAwards prometheus.Gauge

	// Ingestion quality.
	ingestDuplicates prometheus.Counter
	ingestErrors     prometheus.Counter

	// HTTP surface.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Process health.
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
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
		namespace:        "podium",
		subsystem:        "engine",
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

	m.evaluationsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluations_total",
		Help:      "Total number of full achievement evaluation passes",
	})

	m.evaluationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluation_duration_milliseconds",
		Help:      "Histogram of evaluation pass duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.refreshPasses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_passes_total",
		Help:      "Total number of background refresh passes",
	})

	m.refreshDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_pass_duration_milliseconds",
		Help:      "Background refresh pass duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_hits_total",
		Help:      "Total number of result cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_misses_total",
		Help:      "Total number of result cache misses",
	})

	m.cacheInvalidations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_invalidations_total",
		Help:      "Total number of explicit cache invalidations",
	})

	m.participantsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "participants_total",
		Help:      "Number of roster members",
	})

	m.competitionsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "competitions_total",
		Help:      "Number of recorded competitions",
	})

	m.achievementsAwards = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "achievements_awarded",
		Help:      "Total achievements awarded in the latest evaluation",
	})

	m.ingestDuplicates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_duplicates_total",
		Help:      "Total number of duplicate competition submissions detected",
	})

	m.ingestErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_errors_total",
		Help:      "Total number of rejected competition submissions",
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

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordEvaluation records one complete evaluation pass.
func RecordEvaluation(durationMs float64) {
	globalManager.evaluationsTotal.Inc()
	globalManager.evaluationDuration.Observe(durationMs)
}

// RecordRefreshPass records one background refresh pass.
func RecordRefreshPass(durationMs float64) {
	globalManager.refreshPasses.Inc()
	globalManager.refreshDuration.Observe(durationMs)
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() { globalManager.cacheHits.Inc() }

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() { globalManager.cacheMisses.Inc() }

// RecordCacheInvalidation increments the invalidation counter.
func RecordCacheInvalidation() { globalManager.cacheInvalidations.Inc() }

// UpdateParticipantsTotal sets the roster size gauge.
func UpdateParticipantsTotal(n int) { globalManager.participantsTotal.Set(float64(n)) }

// UpdateCompetitionsTotal sets the competitions gauge.
func UpdateCompetitionsTotal(n int) { globalManager.competitionsTotal.Set(float64(n)) }

// UpdateAchievementsAwarded sets the awarded-achievements gauge.
func UpdateAchievementsAwarded(n int) { globalManager.achievementsAwards.Set(float64(n)) }

// RecordIngestDuplicate increments the duplicate submission counter.
func RecordIngestDuplicate() { globalManager.ingestDuplicates.Inc() }

// RecordIngestError increments the rejected submission counter.
func RecordIngestError() { globalManager.ingestErrors.Inc() }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
