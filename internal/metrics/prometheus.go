package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the sync worker

var (
	// Feed metrics
	FeedCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kbo_feed_calls_total",
			Help: "Total number of source feed requests",
		},
		[]string{"endpoint", "status"},
	)

	FeedCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kbo_feed_call_duration_seconds",
			Help:    "Duration of source feed requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Store metrics
	StoreOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kbo_store_operations_total",
			Help: "Total number of document store operations",
		},
		[]string{"operation", "document", "status"},
	)

	// Sync metrics
	SyncOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kbo_sync_operations_total",
			Help: "Total number of sync operations",
		},
		[]string{"type", "status"},
	)

	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kbo_sync_duration_seconds",
			Help:    "Duration of sync operations in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"type"},
	)

	GamesInserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kbo_games_inserted_total",
			Help: "Total number of new game records inserted",
		},
	)

	GamesUpdated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kbo_games_updated_total",
			Help: "Total number of existing game records updated",
		},
	)

	ScheduleSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kbo_schedule_games",
			Help: "Number of game records in the schedule document",
		},
	)

	RankingEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kbo_ranking_entries",
			Help: "Number of ranking entries written in the last standings sync",
		},
	)

	LastSuccessfulSync = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kbo_last_successful_sync_timestamp",
			Help: "Timestamp of last successful sync operation",
		},
	)
)

// RecordFeedCall records a source feed request metric
func RecordFeedCall(endpoint, status string, duration float64) {
	FeedCallsTotal.WithLabelValues(endpoint, status).Inc()
	FeedCallDuration.WithLabelValues(endpoint).Observe(duration)
}

// RecordStoreOp records a document store operation metric
func RecordStoreOp(operation, document, status string) {
	StoreOpsTotal.WithLabelValues(operation, document, status).Inc()
}

// RecordSync records a sync operation
func RecordSync(syncType, status string, duration float64) {
	SyncOperationsTotal.WithLabelValues(syncType, status).Inc()
	SyncDuration.WithLabelValues(syncType).Observe(duration)

	if status == "success" {
		LastSuccessfulSync.SetToCurrentTime()
	}
}

// RecordScheduleMerge records the outcome of a schedule reconciliation
func RecordScheduleMerge(added, updated, total int) {
	GamesInserted.Add(float64(added))
	GamesUpdated.Add(float64(updated))
	ScheduleSize.Set(float64(total))
}
