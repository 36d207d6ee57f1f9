// Package metrics exposes Prometheus collectors for the booking domain.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lodge_bookings_created_total",
		Help: "Total number of bookings created",
	})

	BookingStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lodge_booking_status_changes_total",
		Help: "Total number of booking status transitions by target status",
	}, []string{"status"})

	PaymentOrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lodge_payment_orders_created_total",
		Help: "Total number of gateway orders created",
	})

	PaymentVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lodge_payment_verifications_total",
		Help: "Total number of payment signature checks by result",
	}, []string{"result"})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lodge_notifications_sent_total",
		Help: "Total number of notification attempts by channel and result",
	}, []string{"channel", "result"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lodge_http_requests_total",
		Help: "Total number of HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lodge_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)
