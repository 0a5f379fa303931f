// Package metrics provides Prometheus metrics for the promotional-calendar
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus metric the service records.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// HTTP performance
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Calendar reads
	monthRequests *prometheus.CounterVec
	snapshotLoads prometheus.Counter

	// Campaign generation
	campaignsGenerated     prometheus.Counter
	campaignFailures       prometheus.Counter
	campaignPromptLatency  prometheus.Histogram
	campaignsSaved         prometheus.Counter
	campaignSaveConflicts  prometheus.Counter
	campaignsDeleted       prometheus.Counter

	// Merge core
	mergeDuplicates prometheus.Counter

	// Ingestion
	ingestRows        prometheus.Counter
	ingestRowsDropped prometheus.Counter

	// Auth
	signIns        prometheus.Counter
	signInFailures prometheus.Counter

	// Runtime
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "promocal",
		subsystem:        "calendar",
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

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.monthRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "month_requests_total",
		Help:      "Month detail lookups by month name.",
	}, []string{"month"})

	m.snapshotLoads = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_loads_total",
		Help:      "Calendar snapshot loads from disk.",
	})

	m.campaignsGenerated = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "campaigns_generated_total",
		Help:      "Successful campaign-idea generations.",
	})

	m.campaignFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "campaign_generation_failures_total",
		Help:      "Campaign generations that failed at the collaborator.",
	})

	m.campaignPromptLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "campaign_generation_latency_ms",
		Help:      "End-to-end campaign generation latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	})

	m.campaignsSaved = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "campaigns_saved_total",
		Help:      "Saved-campaign records created.",
	})

	m.campaignSaveConflicts = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "campaign_save_conflicts_total",
		Help:      "Save attempts rejected as duplicates.",
	})

	m.campaignsDeleted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "campaigns_deleted_total",
		Help:      "Saved-campaign records deleted.",
	})

	m.mergeDuplicates = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "merge_duplicates_total",
		Help:      "Events collapsed as duplicates while building merged month views.",
	})

	m.ingestRows = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_rows_total",
		Help:      "Spreadsheet rows processed during ingestion.",
	})

	m.ingestRowsDropped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_rows_dropped_total",
		Help:      "Spreadsheet cells that matched no theme or event shape.",
	})

	m.signIns = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sign_ins_total",
		Help:      "Successful credential sign-ins.",
	})

	m.signInFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sign_in_failures_total",
		Help:      "Rejected credential sign-ins.",
	})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Current allocated heap memory in bytes.",
	})

	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutine_count",
		Help:      "Current number of goroutines.",
	})

	m.systemGCPauseTime = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "gc_pause_time_ms",
		Help:      "Average GC pause time in milliseconds.",
		Buckets:   m.histogramBuckets,
	})
}

// GetRegistry returns the custom registry used for serving /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level recording helpers against the global manager.

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordHTTPRequestDuration observes one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
	}
}

// RecordMonthRequest counts a month detail lookup.
func RecordMonthRequest(month string) {
	if globalManager.enabled {
		globalManager.monthRequests.WithLabelValues(month).Inc()
	}
}

// RecordSnapshotLoad counts a calendar snapshot load.
func RecordSnapshotLoad() {
	if globalManager.enabled {
		globalManager.snapshotLoads.Inc()
	}
}

// RecordCampaignGenerated counts a successful generation and its latency.
func RecordCampaignGenerated(durationMs float64) {
	if globalManager.enabled {
		globalManager.campaignsGenerated.Inc()
		globalManager.campaignPromptLatency.Observe(durationMs)
	}
}

// RecordCampaignGenerationFailure counts a collaborator failure.
func RecordCampaignGenerationFailure() {
	if globalManager.enabled {
		globalManager.campaignFailures.Inc()
	}
}

// RecordCampaignSaved counts a saved-campaign create.
func RecordCampaignSaved() {
	if globalManager.enabled {
		globalManager.campaignsSaved.Inc()
	}
}

// RecordCampaignSaveConflict counts a duplicate save attempt.
func RecordCampaignSaveConflict() {
	if globalManager.enabled {
		globalManager.campaignSaveConflicts.Inc()
	}
}

// RecordCampaignDeleted counts a saved-campaign delete.
func RecordCampaignDeleted() {
	if globalManager.enabled {
		globalManager.campaignsDeleted.Inc()
	}
}

// RecordMergeDuplicates counts events collapsed while merging month views.
func RecordMergeDuplicates(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.mergeDuplicates.Add(float64(n))
	}
}

// RecordIngestRows counts spreadsheet rows handled by ingestion.
func RecordIngestRows(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.ingestRows.Add(float64(n))
	}
}

// RecordIngestDroppedCells counts cells that classified into nothing.
func RecordIngestDroppedCells(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.ingestRowsDropped.Add(float64(n))
	}
}

// RecordSignIn counts a credential sign-in attempt by outcome.
func RecordSignIn(ok bool) {
	if !globalManager.enabled {
		return
	}
	if ok {
		globalManager.signIns.Inc()
	} else {
		globalManager.signInFailures.Inc()
	}
}

// UpdateSystemMemoryUsage sets the allocated heap gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	if globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime observes an average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	if globalManager.enabled {
		globalManager.systemGCPauseTime.Observe(pauseMs)
	}
}
