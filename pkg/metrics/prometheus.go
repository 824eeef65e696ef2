// Package metrics provides Prometheus metrics for the paylens reporting pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Dataset load
	recordsLoaded prometheus.Gauge
	loadErrors    *prometheus.CounterVec
	loadDuration  prometheus.Histogram

	// Report pipeline
	reportDuration      *prometheus.HistogramVec
	reportRows          *prometheus.GaugeVec
	reportsRendered     *prometheus.CounterVec
	emptyGroupWarnings  *prometheus.CounterVec
	sinkErrors          *prometheus.CounterVec
	pipelineRuns        *prometheus.CounterVec
	pipelineLastSuccess prometheus.Gauge

	// Queue and workers
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	workerCount   prometheus.Gauge
	workerErrors  prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System
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
		namespace:        "paylens",
		subsystem:        "reports",
		histogramBuckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)

	m.recordsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_loaded",
		Help:      "Number of salary records held by the record store",
	})

	m.loadErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "load_errors_total",
		Help:      "Dataset loads that failed, by error kind (load, parse)",
	}, []string{"kind"})

	m.loadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "load_duration_milliseconds",
		Help:      "Time spent parsing the dataset in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.reportDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_duration_milliseconds",
		Help:      "Time spent filtering and aggregating one report in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"report"})

	m.reportRows = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_rows",
		Help:      "Entries in the last summary table produced for a report",
	}, []string{"report"})

	m.reportsRendered = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rendered_total",
		Help:      "Reports handed to the render sink, by report and chart kind",
	}, []string{"report", "chart"})

	m.emptyGroupWarnings = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "empty_group_warnings_total",
		Help:      "Reports whose summary table came out empty",
	}, []string{"report"})

	m.sinkErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sink_errors_total",
		Help:      "Render sink failures, by report",
	}, []string{"report"})

	m.pipelineRuns = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_runs_total",
		Help:      "Pipeline runs, by outcome (success, failure)",
	}, []string{"outcome"})

	m.pipelineLastSuccess = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_last_success_unixtime",
		Help:      "Unix time of the last successful pipeline run",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Report jobs waiting in the queue",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Maximum report jobs the queue can hold",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Workers computing reports",
	})

	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_errors_total",
		Help:      "Report jobs that failed inside a worker",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Heap bytes allocated",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutines",
		Help:      "Number of goroutines",
	})
}

// Dataset load.

// UpdateRecordsLoaded sets the number of records in the store.
func UpdateRecordsLoaded(n int) {
	globalManager.recordsLoaded.Set(float64(n))
}

// RecordLoadError counts a failed load of the given kind ("load" or "parse").
func RecordLoadError(kind string) {
	globalManager.loadErrors.WithLabelValues(kind).Inc()
}

// RecordLoadDuration observes how long a load took.
func RecordLoadDuration(ms float64) {
	globalManager.loadDuration.Observe(ms)
}

// Report pipeline.

// RecordReportDuration observes how long one report took to compute.
func RecordReportDuration(report string, ms float64) {
	globalManager.reportDuration.WithLabelValues(report).Observe(ms)
}

// UpdateReportRows sets the entry count of the last table for report.
func UpdateReportRows(report string, rows int) {
	globalManager.reportRows.WithLabelValues(report).Set(float64(rows))
}

// RecordReportRendered counts a report delivered to the sink.
func RecordReportRendered(report, chart string) {
	globalManager.reportsRendered.WithLabelValues(report, chart).Inc()
}

// RecordEmptyGroupWarning counts a report that produced no entries.
func RecordEmptyGroupWarning(report string) {
	globalManager.emptyGroupWarnings.WithLabelValues(report).Inc()
}

// RecordSinkError counts a sink failure for report.
func RecordSinkError(report string) {
	globalManager.sinkErrors.WithLabelValues(report).Inc()
}

// RecordPipelineRun counts a finished run; outcome is "success" or "failure".
func RecordPipelineRun(outcome string) {
	globalManager.pipelineRuns.WithLabelValues(outcome).Inc()
}

// UpdatePipelineLastSuccess records the unix time of the last good run.
func UpdatePipelineLastSuccess(unix int64) {
	globalManager.pipelineLastSuccess.Set(float64(unix))
}

// Queue and workers.

// UpdateQueueSize sets the number of queued report jobs.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateWorkerCount sets the number of report workers.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// HTTP.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// System.

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
