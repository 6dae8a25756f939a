package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TicketsIssued counts successfully created tickets
	TicketsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_issued_total",
			Help: "Total tickets issued",
		},
	)

	// ReferenceCollisions counts reference numbers that were drawn but
	// already taken, forcing a retry
	ReferenceCollisions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticket_reference_collisions_total",
			Help: "Reference number draws discarded due to collision",
		},
	)

	// TicketScans counts gate scans by outcome
	TicketScans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_scans_total",
			Help: "Gate scan attempts by outcome",
		},
		[]string{"outcome"},
	)

	// RequestDuration tracks HTTP request latency per route and status
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
