package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Counters
	JobsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meeting_actions_jobs_created_total",
			Help: "Total number of analysis jobs accepted by the API",
		},
		[]string{"input_type"}, // Text, Audio, Video
	)

	JobsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meeting_actions_jobs_processed_total",
			Help: "Total number of jobs that reached a terminal state in the worker",
		},
		[]string{"status"}, // Done, Failed
	)

	JobsRecoveredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "meeting_actions_jobs_recovered_total",
			Help: "Total number of stalled Processing jobs failed at worker start",
		},
	)

	PollErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "meeting_actions_poll_errors_total",
			Help: "Total number of poll cycles that ended with an error or panic",
		},
	)

	SideEffectErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meeting_actions_side_effect_errors_total",
			Help: "Total number of failed best-effort side effects after a terminal transition",
		},
		[]string{"effect"}, // cache, archive, publish
	)

	AnalysisItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meeting_actions_analysis_items_total",
			Help: "Total number of items extracted per analysis category",
		},
		[]string{"category"}, // decisions, actions, implicitDates, risks, openQuestions
	)

	// Histogram for model call duration
	// Buckets: 250ms to ~256s
	AnalysisDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "meeting_actions_analysis_duration_seconds",
			Help:    "Duration of the model call for one job in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 11),
		},
		[]string{"outcome"}, // success, failure
	)
)
