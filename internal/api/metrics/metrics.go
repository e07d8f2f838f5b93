// Package metrics defines and registers all custom Prometheus metrics for
// the rental marketplace API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "roomrental"

// ── Marketplace metrics ───────────────────────────────────────────────────────

// RoomsCreatedTotal counts newly listed rooms.
// Label:
//   - city: the city the room was listed in
var RoomsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rooms_created_total",
		Help:      "Total number of rooms listed, by city.",
	},
	[]string{"city"},
)

// RequestsCreatedTotal counts newly filed rental requests.
var RequestsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_created_total",
		Help:      "Total number of rental requests created.",
	},
)

// RequestTransitionsTotal counts request state transitions.
// Label:
//   - state: the target state ("accepted", "rejected", "cancelled")
var RequestTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_transitions_total",
		Help:      "Total number of request state transitions, by target state.",
	},
	[]string{"state"},
)

// RentalsFinishedTotal counts rentals ended explicitly or via the
// soft-delete cascade.
var RentalsFinishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rentals_finished_total",
		Help:      "Total number of rentals ended.",
	},
)

// SearchesTotal counts public room searches.
var SearchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of room searches served.",
	},
)

// ── Geocode backfill metrics ──────────────────────────────────────────────────

// GeocodeQueueDepth tracks the current number of jobs waiting in each
// backfill worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var GeocodeQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "geocode_queue_depth",
		Help:      "Current number of jobs pending in each geocode worker channel.",
	},
	[]string{"worker_id"},
)

// GeocodeErrorsTotal counts failed coordinate backfills.
// Label:
//   - reason: short failure description ("lookup", "load_room", "update_room")
var GeocodeErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geocode_errors_total",
		Help:      "Total number of geocode backfills that failed.",
	},
	[]string{"reason"},
)
