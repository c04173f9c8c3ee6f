// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	BoardJobsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gigboard_jobs_created_total",
			Help: "Jobs appended to creator boards by status",
		},
		[]string{"status"},
	)

	BoardValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gigboard_form_validation_failures_total",
			Help: "Failed job form validations by field",
		},
		[]string{"field"},
	)

	GigSearches = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gigboard_gig_search_results",
			Help:    "Number of gigs returned per search",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	DisclaimerOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gigboard_disclaimer_outcomes_total",
			Help: "Disclaimer gate resolutions",
		},
		[]string{"outcome"},
	)

	NotificationsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gigboard_notifications_delivered_total",
			Help: "Notification deliveries by channel and status",
		},
		[]string{"channel", "status"},
	)
)
