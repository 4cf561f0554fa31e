// Package metrics defines and registers the custom Prometheus metrics of the
// shop API. Metrics are registered with the default registry on package
// initialisation; HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shop"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthRejectionsTotal counts requests stopped by the auth middleware.
// Labels:
//   - reason: "unauthenticated", "role_mismatch" or "internal"
//   - role: the role the route required, or "any"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or the role gate.",
	},
	[]string{"reason", "role"},
)

// OwnershipDenialsTotal counts mutations refused because the principal is not
// the resource owner.
// Label:
//   - resource: "product" or "cart_item"
var OwnershipDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ownership_denials_total",
		Help:      "Total number of mutations refused by the ownership check.",
	},
	[]string{"resource"},
)

// ── Catalogue metrics ─────────────────────────────────────────────────────────

// ProductsCreatedTotal counts newly listed products.
// Label:
//   - category: product category (e.g. "kitchen")
var ProductsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products created, by category.",
	},
	[]string{"category"},
)

// CartItemsAddedTotal counts cart lines created.
var CartItemsAddedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_items_added_total",
		Help:      "Total number of items added to carts.",
	},
)
