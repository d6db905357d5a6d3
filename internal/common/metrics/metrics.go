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

	MatchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_requests_total",
			Help: "Total number of match requests by outcome",
		},
		[]string{"status"},
	)

	MatchJobsScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_jobs_scored_total",
			Help: "Total number of jobs scored against a persona",
		},
	)

	MatchJobsExcluded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_jobs_excluded_total",
			Help: "Total number of jobs removed before scoring",
		},
		[]string{"reason"},
	)

	MatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_duration_seconds",
			Help:    "Duration of a full match request in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
	)

	MatchScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_match_score",
			Help:    "Distribution of computed match scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_cache_lookups_total",
			Help: "Persona and weight cache lookups by result",
		},
		[]string{"cache", "result"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Digest notifications by channel and result",
		},
		[]string{"channel", "result"},
	)
)

// ObserveJob records the outcome of one worker job.
func ObserveJob(taskType, errorCode string, seconds float64) {
	WorkerJobDuration.WithLabelValues(taskType).Observe(seconds)
	if errorCode == "" {
		WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		return
	}
	WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
}
