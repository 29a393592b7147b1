package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesRegisteredCollectors(t *testing.T) {
	r := New()
	counter := promauto.With(r.Registerer()).NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "test_events_total",
		Help:      "test counter",
	})
	counter.Add(3)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rubrica_test_events_total 3")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRegistriesAreIndependent(t *testing.T) {
	opts := prometheus.CounterOpts{Name: "rubrica_dup_total", Help: "dup"}
	assert.NotPanics(t, func() {
		promauto.With(New().Registerer()).NewCounter(opts)
		promauto.With(New().Registerer()).NewCounter(opts)
	})
}
