// Package metrics holds the Prometheus collectors exported by the API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the users API.
//
// Key metrics for monitoring:
//   - http_requests_total: request rate by route and status
//   - http_request_duration_seconds: latency distribution
//   - user_errors_total: failures by error kind (not_found, validation, database)
//   - rate_limiter_rejections_total: requests rejected with 429
type Metrics struct {
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	UserErrors            *prometheus.CounterVec
	RateLimiterRejections prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them on reg.
// The namespace prefixes all metric names (e.g., "users_api_http_requests_total").
func NewMetrics(namespace string, reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route and status",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		UserErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "user_errors_total",
			Help:      "Total number of failed user operations by error kind",
		}, []string{"kind"}),
		RateLimiterRejections: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limiter_rejections_total",
			Help:      "Total number of requests rejected by the rate limiter",
		}),
		gatherer: reg,
	}
}

// NewDefault registers the collectors on a fresh registry that also carries
// the Go runtime and process collectors.
func NewDefault(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return NewMetrics(namespace, reg)
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveError counts a failed operation. Safe to call on a nil receiver.
func (m *Metrics) ObserveError(kind string) {
	if m == nil {
		return
	}
	m.UserErrors.WithLabelValues(kind).Inc()
}

// ObserveRejection counts a rate-limited request. Safe to call on a nil receiver.
func (m *Metrics) ObserveRejection() {
	if m == nil {
		return
	}
	m.RateLimiterRejections.Inc()
}
