package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VenueRequestsTotal tracks outbound venue API calls.
	VenueRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hyperliquid_api_requests_total",
			Help: "Total number of Hyperliquid API requests made (by endpoint and status).",
		},
		[]string{"endpoint", "status"},
	)

	// VenueRequestDuration measures the duration of outbound venue API calls.
	VenueRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hyperliquid_api_request_duration_seconds",
			Help:    "Duration of Hyperliquid API requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms → ~16s
		},
		[]string{"endpoint"},
	)

	// OrderSubmissionsTotal tracks order submissions by terminal outcome.
	OrderSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_submissions_total",
			Help: "Order submissions by terminal outcome.",
		},
		[]string{"outcome"},
	)

	// OrderAttemptsTotal tracks individual venue contacts across retry sequences.
	OrderAttemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_attempts_total",
			Help: "Individual order submission attempts including retries.",
		},
	)

	// OrderCancellationsTotal tracks cancellation attempts by result.
	OrderCancellationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_cancellations_total",
			Help: "Order cancellations by result.",
		},
		[]string{"result"},
	)

	// PortfolioValuationsTotal tracks portfolio valuations by status.
	PortfolioValuationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_valuations_total",
			Help: "Portfolio valuations by status.",
		},
		[]string{"status"},
	)

	// NATSPublishErrors tracks NATS publish failures by subject.
	NATSPublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nats_publish_errors_total",
			Help: "Number of NATS publish failures by subject.",
		},
		[]string{"subject"},
	)

	// NATSMessagesTotal tracks NATS publishes by subject and status.
	NATSMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nats_messages_total",
			Help: "NATS messages published by subject and status.",
		},
		[]string{"subject", "status"},
	)
)

// IncVenueRequest increments the venue API request counter.
func IncVenueRequest(endpoint, status string) {
	VenueRequestsTotal.WithLabelValues(endpoint, status).Inc()
}

// IncOrderSubmission increments the submission counter for a terminal outcome.
func IncOrderSubmission(outcome string) {
	OrderSubmissionsTotal.WithLabelValues(outcome).Inc()
}

// IncOrderCancellation increments the cancellation counter.
func IncOrderCancellation(result string) {
	OrderCancellationsTotal.WithLabelValues(result).Inc()
}

// IncPortfolioValuation increments the valuation counter.
func IncPortfolioValuation(status string) {
	PortfolioValuationsTotal.WithLabelValues(status).Inc()
}

// IncNATSMessage increments the NATS message counter.
func IncNATSMessage(subject, status string) {
	NATSMessagesTotal.WithLabelValues(subject, status).Inc()
}

// IncNATSPublishError increments the NATS publish error counter for the given subject.
func IncNATSPublishError(subject string) {
	NATSPublishErrors.WithLabelValues(subject).Inc()
}

// ObserveDuration records elapsed time since start into a HistogramVec or SummaryVec.
func ObserveDuration(v any, start time.Time, labels ...string) {
	duration := time.Since(start).Seconds()
	switch metric := v.(type) {
	case *prometheus.HistogramVec:
		metric.WithLabelValues(labels...).Observe(duration)
	case *prometheus.SummaryVec:
		metric.WithLabelValues(labels...).Observe(duration)
	}
}
