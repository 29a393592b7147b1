package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	authmw "rubrica/pkg/platform/middleware/auth"
)

var _ authmw.RejectionObserver = (*Metrics)(nil)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncLogin(OutcomeSuccess)
	m.IncLogin(OutcomeWrongPassword)
	m.IncLogin(OutcomeWrongPassword)
	m.IncTokenRejected("missing_token")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues(OutcomeWrongPassword)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TokensRejected.WithLabelValues("missing_token")))
}
