// Package metrics defines and registers the agent's custom Prometheus
// metrics. It is the single source of truth for metric names, labels, and
// help strings; HTTP-level request metrics come from the echoprometheus
// middleware and are not duplicated here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// GuardEvaluationsTotal counts finished guard evaluations.
// Labels:
//   - level: required access level ("public", "authenticated", "admin")
//   - outcome: "granted" or "denied"
var GuardEvaluationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_evaluations_total",
		Help:      "Total number of route guard evaluations, by level and outcome.",
	},
	[]string{"level", "outcome"},
)

// SessionClearsTotal counts forced and voluntary session clears.
// Label:
//   - reason: "logout" or "unauthorized" (401 from an authenticated call)
var SessionClearsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_clears_total",
		Help:      "Total number of session clears, by reason.",
	},
	[]string{"reason"},
)

// CartMutationsTotal counts cart operations as seen at the API surface.
// Labels:
//   - op: "add", "remove", "clear"
//   - result: "ok", "duplicate", "persistence_failed"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// CartItemsCount tracks the current number of items in the cart. Updated via
// the cart store's change subscription.
var CartItemsCount = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cart_items_count",
		Help:      "Current number of distinct items in the cart.",
	},
)

// LoginsTotal counts login attempts against the backend.
// Label:
//   - result: "ok", "rejected", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
