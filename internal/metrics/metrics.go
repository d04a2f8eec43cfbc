package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProjectionRequests counts calculator requests by outcome
	ProjectionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projection_requests_total",
			Help: "Calculator requests by status",
		},
		[]string{"status"},
	)

	// ProjectionErrors counts failed calculations
	ProjectionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projection_errors_total",
			Help: "Calculator errors by type",
		},
		[]string{"error_type"},
	)

	// NonConvergence counts projections that did not reach full ownership
	NonConvergence = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "projection_non_convergence_total",
			Help: "Projections that hit the simulation ceiling before full ownership",
		},
	)

	// FullOwnershipYears tracks the reported years to full ownership
	FullOwnershipYears = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "projection_full_ownership_years",
			Help:    "Reported years to full ownership",
			Buckets: []float64{1, 5, 10, 15, 20, 25, 30, 40, 50},
		},
	)

	// CacheLookups counts projection cache hits, misses and backend errors
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projection_cache_total",
			Help: "Projection cache lookups by result",
		},
		[]string{"result"},
	)

	// LeadSubmissions counts contact form submissions
	LeadSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_submissions_total",
			Help: "Contact form submissions by status",
		},
		[]string{"status"},
	)
)
