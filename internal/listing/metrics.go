package listing

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	QueryDuration *prometheus.HistogramVec
	SortRejected  *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		QueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rubrica_listing_duration_seconds",
			Help:    "Duration of paginated collection queries (fetch and count)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"resource"}),
		SortRejected: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "rubrica_listing_sort_rejected_total",
			Help: "Listing requests rejected for a non-whitelisted sort column",
		}, []string{"resource"}),
	}
}

func (m *Metrics) ObserveQuery(resource string, start time.Time) {
	m.QueryDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncSortRejected(resource string) {
	m.SortRejected.WithLabelValues(resource).Inc()
}
