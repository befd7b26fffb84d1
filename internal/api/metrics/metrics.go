// Package metrics defines and registers all custom Prometheus metrics for the
// tour-booking API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry via promauto
// and are exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tourbook"

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsCreatedTotal counts newly created bookings.
// Label:
//   - status: the initial booking status (normally "Pending")
var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created, by initial status.",
	},
	[]string{"status"},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheHitsTotal counts FindOne calls served from a caching proxy.
// Label:
//   - collection: the logical collection name (e.g. "users")
var CacheHitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Total number of single-document reads served from the in-process cache.",
	},
	[]string{"collection"},
)

// CacheMissesTotal counts FindOne calls that fell through to the store.
var CacheMissesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Total number of single-document reads that reached the store.",
	},
	[]string{"collection"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthRejectionsTotal counts requests short-circuited by the auth chain.
// Label:
//   - reason: "missing_header", "malformed_header", "invalid_token", "role_mismatch"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the authentication or authorization gates.",
	},
	[]string{"reason"},
)

// ── Event metrics ─────────────────────────────────────────────────────────────

// EventsPublishedTotal counts events published on the in-process bus.
// Label:
//   - event: the event name (e.g. "booking:created")
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of events published on the in-process event bus.",
	},
	[]string{"event"},
)

// NotificationsSentTotal counts notifications emitted by the booking notifier.
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of booking notifications sent, by event.",
	},
	[]string{"event"},
)

// NotificationsDedupedTotal counts notifications skipped by the dedup guard.
var NotificationsDedupedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_deduped_total",
		Help:      "Total number of booking notifications skipped as duplicates, by event.",
	},
	[]string{"event"},
)
