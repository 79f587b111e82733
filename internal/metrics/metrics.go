// Package metrics holds the Prometheus collectors of the booking service.
// All collectors register with the default registry at init and are served
// on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clinicbook"

// BookingsCreatedTotal counts committed bookings per venue.
var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings committed, by venue.",
	},
	[]string{"venue_id"},
)

// BookingsRejectedTotal counts booking attempts that did not commit.
// Label reason: unauthenticated, invalid_selection, not_found,
// slot_unavailable, storage.
var BookingsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_rejected_total",
		Help:      "Total number of booking attempts rejected, by reason.",
	},
	[]string{"reason"},
)

// AvailabilityCacheTotal counts day-snapshot cache lookups by result (hit/miss/error).
var AvailabilityCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "availability_cache_total",
		Help:      "Availability snapshot cache lookups, by result.",
	},
	[]string{"result"},
)

var EventsPublishErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_publish_errors_total",
		Help:      "Domain events that could not be published, by routing key.",
	},
	[]string{"routing_key"},
)

// HTTPRequestDuration measures request latency by route template, method and status.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route", "method", "status"},
)
