package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ContactsWritten *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		ContactsWritten: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "rubrica_contacts_written_total",
			Help: "Contacts created, updated or deleted",
		}, []string{"op"}),
	}
}

func (m *Metrics) IncWrite(op string) {
	m.ContactsWritten.WithLabelValues(op).Inc()
}
