// Package metrics registers the process-wide Prometheus counters exposed on
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AllocationsApproved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostel_allocations_approved_total",
		Help: "Applications approved with an admin-chosen room.",
	})
	AllocationsAutoAssigned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostel_allocations_auto_assigned_total",
		Help: "Applications approved through auto-allocation.",
	})
	Checkouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostel_checkouts_total",
		Help: "Allocations checked out.",
	})
	FeesPaid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostel_fees_paid_total",
		Help: "Fees marked paid.",
	})
)
