// Package metrics declares the application-level Prometheus collectors.
// HTTP transport metrics live in the presentation middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UsecaseRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "usecase_requests_total",
			Help: "Total number of use case invocations.",
		},
		[]string{"use_case", "outcome"},
	)

	UsecaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "usecase_duration_seconds",
			Help:    "Duration of use case execution in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"use_case"},
	)

	OrdersConfirmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_confirmed_total",
			Help: "Count of orders that transitioned to CONFIRMED.",
		},
	)

	StockDecrementFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_decrement_failures_total",
			Help: "Count of post-confirmation stock decrements that did not fully apply.",
		},
		[]string{"reason"},
	)

	EventPublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_publish_failed_total",
			Help: "Count of domain event publish failures.",
		},
		[]string{"event"},
	)
)
