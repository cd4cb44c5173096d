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
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: prometheus.DefBuckets,
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

	SignalsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intelligence_signals_detected_total",
			Help: "Buying signals emitted by the signal detector",
		},
		[]string{"signal_type"},
	)

	AlertsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intelligence_alerts_generated_total",
			Help: "Alerts produced by rule evaluation",
		},
		[]string{"category", "severity"},
	)

	AlertsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intelligence_alerts_dispatched_total",
			Help: "Alert deliveries per sink and outcome",
		},
		[]string{"sink", "outcome"},
	)

	HealthStatusAssessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intelligence_health_status_total",
			Help: "Customer health assessments by resulting status",
		},
		[]string{"status"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intelligence_cache_lookups_total",
			Help: "Repository cache lookups by entity and result",
		},
		[]string{"entity", "result"},
	)
)
