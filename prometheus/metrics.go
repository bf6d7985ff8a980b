package prometheus

import (
	"time"

	"github.com/TonyNguyenVn17/USF-Hackabull/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Document store operation metrics
	StoreOperationDuration *prometheus.HistogramVec

	// Record operation metrics
	UserOperationsCounter *prometheus.CounterVec
	TeamOperationsCounter *prometheus.CounterVec

	// Form import metrics
	ImportRowsCounter *prometheus.CounterVec
	SyncRunsCounter   *prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	// Use metric prefix from configuration
	prefix := cfg.Metrics.Prefix

	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_store_operation_duration_seconds",
			Help:    "Duration of document store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	UserOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_user_operations_total",
			Help: "Total number of user record operations",
		},
		[]string{"operation"},
	)

	TeamOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_team_operations_total",
			Help: "Total number of team record operations",
		},
		[]string{"operation"},
	)

	ImportRowsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_import_rows_total",
			Help: "Total number of form response rows by import outcome",
		},
		[]string{"outcome"},
	)

	SyncRunsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_sync_runs_total",
			Help: "Total number of form sync runs by result",
		},
		[]string{"result"},
	)
}

// TrackStoreOperation returns a function that records the duration of a
// document store operation. No-op until InitMetrics runs.
func TrackStoreOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if StoreOperationDuration == nil {
			return
		}
		duration := time.Since(startTime).Seconds()
		StoreOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordUserOperation increments the counter for user record operations
func RecordUserOperation(operation string) {
	if UserOperationsCounter == nil {
		return
	}
	UserOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordTeamOperation increments the counter for team record operations
func RecordTeamOperation(operation string) {
	if TeamOperationsCounter == nil {
		return
	}
	TeamOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordImportRow increments the import row counter for an outcome
// (imported, skipped, failed)
func RecordImportRow(outcome string) {
	if ImportRowsCounter == nil {
		return
	}
	ImportRowsCounter.WithLabelValues(outcome).Inc()
}

// RecordSyncRun increments the sync run counter for a result (success, error)
func RecordSyncRun(result string) {
	if SyncRunsCounter == nil {
		return
	}
	SyncRunsCounter.WithLabelValues(result).Inc()
}
