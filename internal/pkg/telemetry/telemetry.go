// Package telemetry is the two-tier metrics system: a lightweight
// in-memory request log (Record/List) alongside Prometheus
// counters/histograms/gauges for the banking operations and the
// Gatekeeper's admission pressure.
package telemetry

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RequestMetric stores basic information about an HTTP request.
type RequestMetric struct {
	Endpoint string
	Status   int
	Duration time.Duration
}

var (
	mu         sync.Mutex
	metricList []RequestMetric
)

// Record adds a new request metric entry in a thread-safe way.
func Record(endpoint string, status int, duration time.Duration) {
	mu.Lock()
	metricList = append(metricList, RequestMetric{Endpoint: endpoint, Status: status, Duration: duration})
	mu.Unlock()
}

// List returns a copy of the collected request metrics.
func List() []RequestMetric {
	mu.Lock()
	defer mu.Unlock()
	copied := make([]RequestMetric, len(metricList))
	copy(copied, metricList)
	return copied
}

// HTTP-level Prometheus metrics.
var (
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Banking-operation Prometheus metrics. The deposit, withdraw and send
// handlers record BankingOperationsTotal; create_user and get_balance
// are not recorded, and no caller increments UsersCreatedTotal.
var (
	UsersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bank_users_created_total",
			Help: "Total number of users created",
		},
	)

	BankingOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bank_operations_total",
			Help: "Total number of banking operations by kind and outcome",
		},
		[]string{"operation", "status"}, // operation: deposit|withdraw|send; status: success|error
	)

	TransferAmountHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bank_transfer_amount",
			Help:    "Distribution of transfer amounts",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
		},
	)

	AccountBalanceHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bank_account_balance",
			Help:    "Distribution of account balances observed after operations",
			Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000, 10000, 50000},
		},
	)

	// GatekeeperInFlightRatio samples inFlight/N per user on every
	// Gatekeeper.Execute call — the supplemental saturation signal that
	// makes too_many_requests_to_user pressure visible before it starts
	// happening.
	GatekeeperInFlightRatio = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bank_gatekeeper_in_flight_ratio",
			Help: "Per-user Gatekeeper in-flight count divided by its capacity",
		},
		[]string{"username"},
	)

	EventsDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bank_events_dropped_total",
			Help: "Total number of notification events dropped before publish",
		},
		[]string{"reason"},
	)

	EventPublishErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bank_event_publish_errors_total",
			Help: "Total number of notification event publish failures",
		},
		[]string{"reason"},
	)
)

// RecordBankingOperation records one banking operation's outcome.
func RecordBankingOperation(operation, status string) {
	BankingOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordTransferAmount records a completed transfer's amount for
// distribution analysis. amount is the float64 value of the displayed
// (truncated) decimal, suitable only for histogram bucketing, never
// for balance arithmetic.
func RecordTransferAmount(amount float64) {
	TransferAmountHistogram.Observe(amount)
}

// RecordAccountBalance records a balance observed after a successful
// operation, for distribution analysis.
func RecordAccountBalance(balance float64) {
	AccountBalanceHistogram.Observe(balance)
}

// RecordGatekeeperInFlight samples username's current in-flight ratio.
func RecordGatekeeperInFlight(username string, inFlight, capacity int) {
	if capacity == 0 {
		return
	}
	GatekeeperInFlightRatio.WithLabelValues(username).Set(float64(inFlight) / float64(capacity))
}

// RecordEventDropped records a notification event dropped before
// publish (e.g. the async producer's queue was full).
func RecordEventDropped(reason string) {
	EventsDroppedTotal.WithLabelValues(reason).Inc()
}

// RecordEventPublishingError records a notification event that failed
// to publish.
func RecordEventPublishingError(reason string) {
	EventPublishErrorsTotal.WithLabelValues(reason).Inc()
}
