package request

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the per-route HTTP series. Endpoints are "METHOD pattern"
// labels or UnmatchedEndpoint, so cardinality is bounded by the route table.
type Metrics struct {
	EndpointLatency *prometheus.HistogramVec
	Responses       *prometheus.CounterVec
}

// NewMetrics registers the HTTP series with reg.
// Tests pass a fresh registry to avoid duplicate registration panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		EndpointLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rubrica_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		Responses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rubrica_http_responses_total",
			Help: "HTTP responses by endpoint and status class",
		}, []string{"endpoint", "class"}),
	}
}

func (m *Metrics) ObserveEndpointLatency(endpoint string, durationSeconds float64) {
	m.EndpointLatency.WithLabelValues(endpoint).Observe(durationSeconds)
}

// IncResponse counts a response under its status class ("2xx", "4xx", ...).
func (m *Metrics) IncResponse(endpoint string, status int) {
	m.Responses.WithLabelValues(endpoint, strconv.Itoa(status/100)+"xx").Inc()
}
