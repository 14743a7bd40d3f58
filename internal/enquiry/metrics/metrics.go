// Package metrics registers the Prometheus metrics for the enquiry domain.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the enquiry domain metrics.
type Metrics struct {
	EnquiriesCreated  prometheus.Counter
	EnquiriesClosed   prometheus.Counter
	EnquiriesReopened prometheus.Counter
	ListingDuration   prometheus.Histogram
	SearchPlans       *prometheus.CounterVec

	// ReferenceCollisions counts allocator candidates skipped because the
	// reference was already issued. Nonzero means the sequence table and the
	// enquiries table have drifted, usually after a seed or restore.
	ReferenceCollisions prometheus.Counter
}

// New creates and registers all enquiry metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		EnquiriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "enquiries_created_total",
			Help: "Total number of enquiries logged",
		}),
		EnquiriesClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "enquiries_closed_total",
			Help: "Total number of enquiries closed",
		}),
		EnquiriesReopened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "enquiries_reopened_total",
			Help: "Total number of enquiries reopened",
		}),
		ListingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "enquiries_listing_duration_seconds",
			Help:    "Time to serve a listing request",
			Buckets: prometheus.DefBuckets,
		}),
		SearchPlans: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "enquiries_search_plans_total",
			Help: "Search plans by execution mode",
		}, []string{"mode"}),
		ReferenceCollisions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "enquiries_reference_collisions_total",
			Help: "Reference candidates skipped because they were already issued",
		}),
	}
}

// ObserveReferenceCollision records one skipped allocator candidate.
func (m *Metrics) ObserveReferenceCollision() {
	if m == nil {
		return
	}
	m.ReferenceCollisions.Inc()
}

// ObserveSearchMode records which execution mode a search plan chose.
func (m *Metrics) ObserveSearchMode(mode string) {
	if m == nil {
		return
	}
	m.SearchPlans.WithLabelValues(mode).Inc()
}
