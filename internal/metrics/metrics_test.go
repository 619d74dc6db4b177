package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.Load("scores", OutcomeOK)
	m.Load("scores", OutcomeOK)
	m.Load("teams", OutcomeUpstream)
	m.Report("teams", OutcomeIgnored)
	m.UnknownRoundStatus()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.loads.WithLabelValues("scores", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues("teams", OutcomeUpstream)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reports.WithLabelValues("teams", OutcomeIgnored)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.unknownStatus))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Load("scores", OutcomeOK)
		m.Report("scores", OutcomeOK)
		m.UnknownRoundStatus()
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.Load("scores", OutcomeDecode)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `mastersboard_loads_total{board="scores",outcome="decode"} 1`)
}
