package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Login outcomes.
const (
	OutcomeSuccess       = "success"
	OutcomeUnknownUser   = "unknown_user"
	OutcomeWrongPassword = "wrong_password"
	OutcomeError         = "error"
)

// Metrics holds Prometheus collectors for login and token checks.
type Metrics struct {
	LoginAttempts  *prometheus.CounterVec
	LoginDuration  prometheus.Histogram
	TokensRejected *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LoginAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rubrica_login_attempts_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		LoginDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "rubrica_login_duration_seconds",
			Help:    "Login latency including the bcrypt comparison",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1},
		}),
		TokensRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rubrica_tokens_rejected_total",
			Help: "Requests rejected by the auth gate, by error code",
		}, []string{"code"}),
	}
}

func (m *Metrics) IncLogin(outcome string) {
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveLoginDuration(seconds float64) {
	m.LoginDuration.Observe(seconds)
}

// IncTokenRejected satisfies the auth middleware's RejectionObserver.
func (m *Metrics) IncTokenRejected(code string) {
	m.TokensRejected.WithLabelValues(code).Inc()
}
