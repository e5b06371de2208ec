package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters_Inc(t *testing.T) {
	counters, _ := NewTestCounters()

	counters.StreamLines.Inc("sonarr")
	counters.StreamLines.Inc("sonarr")
	counters.StreamLines.Inc("radarr")
	counters.APIRequests.Inc("GET", "/api/stats", "200")

	lines := counters.StreamLines.(*PrometheusCounter).counter
	assert.Equal(t, 2.0, testutil.ToFloat64(lines.WithLabelValues("sonarr")))
	assert.Equal(t, 1.0, testutil.ToFloat64(lines.WithLabelValues("radarr")))

	requests := counters.APIRequests.(*PrometheusCounter).counter
	assert.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues("GET", "/api/stats", "200")))
}

func TestNewTestCounters_Independent(t *testing.T) {
	first, reg := NewTestCounters()
	second, _ := NewTestCounters()

	first.Reconnects.Inc("all")

	n, err := testutil.GatherAndCount(reg, "huntarr_client_stream_reconnects_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NotSame(t, first.Reconnects, second.Reconnects)
}

func TestConfigureRouter(t *testing.T) {
	e := echo.New()
	ConfigureRouter(e)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard.Inc("anything", "at", "all") })
}

func TestCounters_ObserveRequest(t *testing.T) {
	counters, _ := NewTestCounters()

	counters.ObserveRequest("POST", "/api/settings/general", 200)
	counters.ObserveRequest("GET", "/api/stats", 0)

	requests := counters.APIRequests.(*PrometheusCounter).counter
	assert.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues("POST", "/api/settings/general", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues("GET", "/api/stats", "0")))
}
