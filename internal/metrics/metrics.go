package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	apiRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventdesk_api_requests_total",
			Help: "Requests issued by the events API client",
		},
		[]string{"operation", "outcome"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eventdesk_api_request_duration_seconds",
			Help:    "Round trip duration of events API client requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	serverRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventdesk_server_requests_total",
			Help: "Requests served by the events backend",
		},
		[]string{"method", "route", "status"},
	)

	storedEvents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eventdesk_server_events",
			Help: "Number of events held by the backend",
		},
	)
)

// ObserveApiRequest records one client round trip.
func ObserveApiRequest(operation string, started time.Time, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	apiRequests.WithLabelValues(operation, outcome).Inc()
	apiRequestDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func ObserveServerRequest(method, route, status string) {
	serverRequests.WithLabelValues(method, route, status).Inc()
}

func SetStoredEvents(count int) {
	storedEvents.Set(float64(count))
}

// ApiRequestCount is the number of client requests seen for operation and outcome.
func ApiRequestCount(operation, outcome string) (float64, error) {
	return counterValue(apiRequests.WithLabelValues(operation, outcome))
}

func ServerRequestCount(method, route, status string) (float64, error) {
	return counterValue(serverRequests.WithLabelValues(method, route, status))
}
