// Package metrics defines Prometheus metrics for priceboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "priceboard"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the liveness probe is passing (1) or failing (0).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the readiness probe is passing (1) or failing (0).",
	})
)

// Upload metrics.
var (
	UploadRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upload_rows_total",
		Help:      "Total number of spreadsheet rows ingested.",
	}, []string{"kind"})

	UploadErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upload_errors_total",
		Help:      "Total number of rejected upload rows.",
	})
)

// Repricing metrics.
var (
	RepricingRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "repricing_runs_total",
		Help:      "Total number of repricing runs.",
	})

	RepricingErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "repricing_errors_total",
		Help:      "Total number of failed repricing runs.",
	})

	RepricingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "repricing_duration_seconds",
		Help:      "Duration of repricing runs in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	RepricingLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "repricing_daily_limit_hits_total",
		Help:      "Total number of times the daily repricing budget was exhausted.",
	})

	RepricingDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "repricing_daily_usage",
		Help:      "Repricing runs consumed within the rolling 24-hour window.",
	})
)

// Notification metrics.
var (
	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of notification webhook deliveries in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of failed notification deliveries.",
	})
)

// Scoring metrics.
var (
	ScoringDistribution = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scoring_distribution",
		Help:      "Distribution of computed unit similarity scores.",
		Buckets:   prometheus.LinearBuckets(0, 0.5, 11), // 0, 0.5, ..., 5
	})

	PricesComputedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prices_computed_total",
		Help:      "Total number of per-unit prices computed.",
	})
)
