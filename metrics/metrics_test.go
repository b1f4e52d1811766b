package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerObservesDuration(t *testing.T) {
	h := prometheus.NewHistogram(prometheus.HistogramOpts{Name: "test_duration_seconds", Help: "test"})

	timer := NewTimer()
	time.Sleep(5 * time.Millisecond)
	d := timer.ObserveDuration(h)

	assert.GreaterOrEqual(t, d, 5*time.Millisecond)

	reg := prometheus.NewRegistry()
	reg.MustRegister(h)
	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, uint64(1), families[0].GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestHandlerExposesCollectors(t *testing.T) {
	ResultsRecorded.Inc()
	LaneFallbacks.Add(0)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "wodboard_results_recorded_total")
	assert.Contains(t, string(body), "wodboard_lane_fallbacks_total")
}
