package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gastropro_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// NotificationsCreated counts notifications persisted, by category.
	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gastropro_notifications_created_total",
			Help: "Total number of notifications created",
		},
		[]string{"category"},
	)

	// NotificationsSuppressed counts candidates dropped by duplicate suppression.
	NotificationsSuppressed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gastropro_notifications_suppressed_total",
			Help: "Total number of notification candidates suppressed as duplicates",
		},
		[]string{"category"},
	)

	// NotificationsCleaned counts rows removed by the expiry/retention sweep.
	NotificationsCleaned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gastropro_notifications_cleaned_total",
			Help: "Total number of notifications removed by cleanup",
		},
	)
)
