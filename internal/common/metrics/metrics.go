package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"

	OutcomeAccepted = "accepted"
	OutcomeBlocked  = "blocked"
)

var (
	FieldValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_field_validations_total",
			Help: "Total number of field validations run after a change event",
		},
		[]string{"field", "result"},
	)

	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Total number of submit attempts by outcome",
		},
		[]string{"outcome"},
	)

	RejectedEvents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "form_rejected_events_total",
			Help: "Total number of change events refused by the form store",
		},
	)

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
)

// ValidationResult maps an error message to the result label.
func ValidationResult(message string) string {
	if message == "" {
		return ResultValid
	}
	return ResultInvalid
}
