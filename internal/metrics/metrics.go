package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database metrics
	dbQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "certindexor_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation"},
	)

	dbQueryTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "certindexor_db_query_duration_seconds",
			Help:    "Duration of database queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	dbErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "certindexor_db_errors_total",
			Help: "Total number of database errors",
		},
		[]string{"operation"},
	)

	// Indexing metrics
	LastProcessedBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "certindexor_last_processed_block",
			Help: "Height of the last finalized block committed to the store",
		},
	)

	BlocksProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "certindexor_blocks_processed_total",
			Help: "Total number of blocks committed by this instance",
		},
	)

	EventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "certindexor_events_processed_total",
			Help: "Total number of process-ran events translated, by process name",
		},
		[]string{"process"},
	)

	BlockProcessingTime = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "certindexor_block_processing_duration_seconds",
			Help:    "Time taken to handle and commit a single block",
			Buckets: prometheus.DefBuckets,
		},
	)

	UnprocessedBlocks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "certindexor_unprocessed_blocks",
			Help: "Number of finalized blocks queued for processing",
		},
	)

	IndexerRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "certindexor_indexer_retries_total",
			Help: "Total number of failed indexing steps that were retried",
		},
	)

	PoisonBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "certindexor_poison_block",
			Help: "1 while the indexer is stuck retrying the same block past the configured threshold",
		},
	)

	// System metrics
	Uptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "certindexor_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)

	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "certindexor_errors_total",
			Help: "Total number of errors by component and severity",
		},
		[]string{"component", "severity"},
	)

	ComponentHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "certindexor_component_health",
			Help: "Component health status (1=healthy, 0=unhealthy)",
		},
		[]string{"component"},
	)

	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "certindexor_goroutines",
			Help: "Number of active goroutines",
		},
	)

	MemoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "certindexor_memory_usage_bytes",
			Help: "Memory usage statistics",
		},
		[]string{"type"},
	)

	startTime = time.Now()
)

func DBQueryInc(operation string) {
	dbQueries.WithLabelValues(operation).Inc()
}

func DBQueryDuration(operation string, duration time.Duration) {
	dbQueryTime.WithLabelValues(operation).Observe(duration.Seconds())
}

func DBErrorsInc(operation string) {
	dbErrors.WithLabelValues(operation).Inc()
}

func BlockProcessingTimeLog(duration time.Duration) {
	BlockProcessingTime.Observe(duration.Seconds())
}

func LastProcessedBlockSet(height uint64) {
	LastProcessedBlock.Set(float64(height))
}

func BlocksProcessedInc() {
	BlocksProcessed.Inc()
}

func EventsProcessedInc(process string) {
	EventsProcessed.WithLabelValues(process).Inc()
}

func UnprocessedBlocksSet(n int) {
	UnprocessedBlocks.Set(float64(n))
}

func IndexerRetriesInc() {
	IndexerRetries.Inc()
}

func PoisonBlockSet(stuck bool) {
	PoisonBlock.Set(boolToFloat(stuck))
}

func ErrorsInc(component, severity string) {
	Errors.WithLabelValues(component, severity).Inc()
}

func ComponentHealthSet(component string, healthy bool) {
	ComponentHealth.WithLabelValues(component).Set(boolToFloat(healthy))
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// UpdateSystemMetrics updates runtime system metrics.
// This should be called periodically (e.g., every 15 seconds).
func UpdateSystemMetrics() {
	Uptime.Set(time.Since(startTime).Seconds())

	Goroutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	MemoryUsage.WithLabelValues("alloc").Set(float64(m.Alloc))
	MemoryUsage.WithLabelValues("total_alloc").Set(float64(m.TotalAlloc))
	MemoryUsage.WithLabelValues("sys").Set(float64(m.Sys))
	MemoryUsage.WithLabelValues("heap_inuse").Set(float64(m.HeapInuse))
}
