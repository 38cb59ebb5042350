// Package metrics holds the Prometheus collectors of the dashboard.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	EndpointLatency *prometheus.HistogramVec
	QuoteFetches    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "Total number of HTTP requests, labeled by route, method and status code",
		}, []string{"route", "method", "code"}),
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		QuoteFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_quote_fetches_total",
			Help: "Total number of price fetches, labeled by pair and result",
		}, []string{"pair", "result"}),
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.EndpointLatency.WithLabelValues(route).Observe(d.Seconds())
}

// QuoteFetched records the outcome of a price fetch.
func (m *Metrics) QuoteFetched(pair string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.QuoteFetches.WithLabelValues(pair, result).Inc()
}
