package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every metric the service exposes.
type Registry struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ModerationDecisionsTotal *prometheus.CounterVec

	ActivityEntriesQueued    prometheus.Counter
	ActivityEntriesPersisted prometheus.Counter
	ActivityFlushesTotal     prometheus.Counter
	ActivityFlushFailures    prometheus.Counter
	ActivityQueueDepth       prometheus.Gauge
}

// NewRegistry creates and registers all metrics with the default prometheus
// registry.
func NewRegistry() *Registry {
	registry := &Registry{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "path", "status"},
		),
		ModerationDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moderation_decisions_total",
				Help: "Total number of moderation decisions by entity and status",
			},
			[]string{"entity", "status"},
		),
		ActivityEntriesQueued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "activity_log_entries_queued_total",
			Help: "Total number of activity log entries queued",
		}),
		ActivityEntriesPersisted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "activity_log_entries_persisted_total",
			Help: "Total number of activity log entries persisted",
		}),
		ActivityFlushesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "activity_log_flushes_total",
			Help: "Total number of activity log flush attempts",
		}),
		ActivityFlushFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "activity_log_flush_failures_total",
			Help: "Total number of failed activity log flushes",
		}),
		ActivityQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "activity_log_queue_depth",
			Help: "Current number of activity log entries awaiting flush",
		}),
	}

	prometheus.MustRegister(
		registry.HTTPRequestsTotal,
		registry.HTTPRequestDuration,
		registry.ModerationDecisionsTotal,
		registry.ActivityEntriesQueued,
		registry.ActivityEntriesPersisted,
		registry.ActivityFlushesTotal,
		registry.ActivityFlushFailures,
		registry.ActivityQueueDepth,
	)

	return registry
}

// GinMiddleware records request counts and durations per route.
func GinMiddleware(registry *Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())

		registry.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		registry.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
	}
}
