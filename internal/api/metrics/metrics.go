// Package metrics defines and registers all custom Prometheus metrics for the
// POS backend. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default registry at package load; the router
// exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pos"

// LoginsTotal counts login attempts by gate outcome.
// Label:
//   - result: "success", "none_error", "duplicate_error", "banned_error", "auth_error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by gate outcome.",
	},
	[]string{"result"},
)

// OrdersCreatedTotal counts successfully placed orders.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders placed.",
	},
)

// OrderValueCents observes the frozen total of each placed order, in minor
// currency units.
var OrderValueCents = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_value_cents",
		Help:      "Distribution of order totals in minor currency units.",
		Buckets:   prometheus.ExponentialBuckets(500, 2, 10), // 5.00 up to ~25k
	},
)

// DishMutationsTotal counts menu writes.
// Label:
//   - op: "create", "update", "delete", "availability"
var DishMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dish_mutations_total",
		Help:      "Total number of menu mutations, by operation.",
	},
	[]string{"op"},
)
