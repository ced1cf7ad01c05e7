package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_submissions_total",
			Help: "Booking submissions by outcome",
		},
		[]string{"outcome"},
	)

	wizardSteps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_step_transitions_total",
			Help: "Wizard step transitions",
		},
		[]string{"direction", "result"},
	)

	shiftAssignments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shift_assignments_total",
			Help: "Shift assignment operations",
		},
		[]string{"operation", "result"},
	)
)

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRequest records one HTTP request.
func ObserveRequest(method string, status int, duration time.Duration) {
	httpDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(duration.Seconds())
}

// RecordSubmission counts a submission outcome ("success" or "failure").
func RecordSubmission(outcome string) {
	submissions.WithLabelValues(outcome).Inc()
}

// RecordStepTransition counts a wizard next/previous and whether it advanced.
func RecordStepTransition(direction, result string) {
	wizardSteps.WithLabelValues(direction, result).Inc()
}

// RecordAssignment counts a shift assignment operation.
func RecordAssignment(operation, result string) {
	shiftAssignments.WithLabelValues(operation, result).Inc()
}
