package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IssuancesTotal counts finished issuances by outcome and failed stage
	IssuancesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launchpad_issuances_total",
			Help: "Total number of finished issuances",
		},
		[]string{"outcome", "stage"},
	)

	// IssuanceDuration tracks end-to-end issuance time
	IssuanceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "launchpad_issuance_duration_seconds",
			Help:    "End-to-end issuance duration in seconds",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 120, 300},
		},
		[]string{"outcome"},
	)

	// IssuancesInFlight tracks issuances currently executing
	IssuancesInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "launchpad_issuances_in_flight",
			Help: "Number of issuances currently executing",
		},
	)

	// GroupSubmissionsTotal counts operation group submissions by kind and status
	GroupSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launchpad_group_submissions_total",
			Help: "Total number of operation group submissions",
		},
		[]string{"kind", "status"},
	)

	// GroupSubmitDuration tracks submit-and-confirm time per group kind
	GroupSubmitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "launchpad_group_submit_duration_seconds",
			Help:    "Operation group submit-and-confirm duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	// MetadataPublishesTotal counts metadata publishes by backend and status
	MetadataPublishesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launchpad_metadata_publishes_total",
			Help: "Total number of metadata publish attempts",
		},
		[]string{"backend", "status"},
	)

	// ErrorsTotal counts errors by component
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launchpad_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)
