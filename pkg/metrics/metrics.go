package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "turfbook_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "turfbook_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// result is one of admitted, conflict, rejected, error
	BookingAdmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "turfbook_booking_admissions_total",
			Help: "Booking admission attempts by result",
		},
		[]string{"result"},
	)

	BookingLockWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "turfbook_booking_lock_wait_seconds",
			Help:    "Time spent waiting for the per-slot admission lock",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
	)

	BookingStatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "turfbook_booking_status_changes_total",
			Help: "Booking status changes made by turf owners",
		},
		[]string{"from", "to"},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "turfbook_booking_cancellations_total",
			Help: "Total number of booking cancellations by the requester",
		},
	)

	RatingsSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "turfbook_ratings_submitted_total",
			Help: "Total number of player ratings submitted",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordAdmission(result string) {
	BookingAdmissionsTotal.WithLabelValues(result).Inc()
}

func RecordLockWait(seconds float64) {
	BookingLockWait.Observe(seconds)
}

func RecordStatusChange(from, to string) {
	BookingStatusChangesTotal.WithLabelValues(from, to).Inc()
}

func RecordCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordRating() {
	RatingsSubmittedTotal.Inc()
}
