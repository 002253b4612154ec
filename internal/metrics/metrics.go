package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssignmentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobfair_assignments_created_total",
			Help: "Total number of booth assignments created",
		},
	)

	AssignmentStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobfair_assignment_status_changes_total",
			Help: "Total number of assignment status updates by target status",
		},
		[]string{"status"},
	)

	AssignmentsRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobfair_assignments_removed_total",
			Help: "Total number of booth assignments removed",
		},
	)

	BulkAssignResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobfair_bulk_assign_results_total",
			Help: "Outcome of each item processed by bulk assignment",
		},
		[]string{"result"},
	)

	BulkAssignDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobfair_bulk_assign_duration_seconds",
			Help:    "Duration of bulk assignment requests in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	EventPublishFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobfair_event_publish_failures_total",
			Help: "Total number of assignment events that could not be published",
		},
	)
)
