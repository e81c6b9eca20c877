package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Slot cache metrics
	SlotCacheHits          prometheus.Counter
	SlotCacheMisses        prometheus.Counter
	SlotCacheInvalidations *prometheus.CounterVec
	SlotCacheErrors        *prometheus.CounterVec

	// Availability computation metrics
	AvailabilityLatency   *prometheus.HistogramVec
	MonthlyDaysSkipped    prometheus.Counter
	BookableWindowsServed prometheus.Counter

	// Database metrics
	DatabaseOperations *prometheus.CounterVec
	DatabaseLatency    *prometheus.HistogramVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		SlotCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "slot_cache_hits_total",
			Help:      "Total number of weekly slot cache hits",
		}),
		SlotCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "slot_cache_misses_total",
			Help:      "Total number of weekly slot cache misses",
		}),
		SlotCacheInvalidations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "slot_cache_invalidations_total",
			Help:      "Total number of slot cache invalidations by scope",
		}, []string{"scope"}),
		SlotCacheErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "slot_cache_errors_total",
			Help:      "Total number of slot cache operation failures",
		}, []string{"operation"}),

		AvailabilityLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "availability_computation_duration_seconds",
			Help:      "Time spent computing availability results",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		MonthlyDaysSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "monthly_days_skipped_total",
			Help:      "Days omitted from monthly aggregation due to load failures",
		}),
		BookableWindowsServed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bookable_windows_served_total",
			Help:      "Total number of bookable windows returned to callers",
		}),

		DatabaseOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"operation", "status"}),
		DatabaseLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_operation_duration_seconds",
			Help:      "Duration of database operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
	}
}
