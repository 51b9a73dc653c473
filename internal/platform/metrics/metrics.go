package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	SubmissionsAccepted prometheus.Counter
	SubmissionsRejected prometheus.Counter

	NotificationsDelivered prometheus.Counter
	NotificationsFailed    prometheus.Counter
	NotificationsDropped   prometheus.Counter

	AssetsCreated       prometheus.Counter
	CustomersRegistered prometheus.Counter

	RequestLatency *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		SubmissionsAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fleetgate_submissions_accepted_total",
			Help: "Total number of form submissions that passed validation",
		}),
		SubmissionsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fleetgate_submissions_rejected_total",
			Help: "Total number of form submissions rejected with field errors",
		}),
		NotificationsDelivered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fleetgate_notifications_delivered_total",
			Help: "Total number of notification jobs delivered",
		}),
		NotificationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fleetgate_notifications_failed_silently_total",
			Help: "Total number of notification jobs that failed silently (render or transport)",
		}),
		NotificationsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fleetgate_notifications_dropped_total",
			Help: "Total number of notification jobs dropped because the queue was full",
		}),
		AssetsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fleetgate_assets_created_total",
			Help: "Total number of tracked assets registered",
		}),
		CustomersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fleetgate_customers_registered_total",
			Help: "Total number of customer accounts registered",
		}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fleetgate_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}
