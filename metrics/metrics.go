// Package metrics exposes the Prometheus collectors for the HTTP API and
// the leaderboard services.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TeamsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wodboard_teams_total",
			Help: "Total number of registered teams",
		},
	)

	WorkoutsTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wodboard_workouts_total",
			Help: "Total number of workouts by visibility",
		},
		[]string{"visibility"},
	)

	ResultsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wodboard_results_recorded_total",
			Help: "Total number of results recorded",
		},
	)

	ResultsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wodboard_results_rejected_total",
			Help: "Total number of result submissions rejected by reason",
		},
		[]string{"reason"},
	)

	PointsRecomputeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wodboard_points_recompute_duration_seconds",
			Help:    "Time to recompute and persist the points of one workout",
			Buckets: prometheus.DefBuckets,
		},
	)

	HeatsAssigned = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wodboard_heats_total",
			Help: "Number of heats in the current assignment",
		},
	)

	LaneFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wodboard_lane_fallbacks_total",
			Help: "Heat writes retried without the lane column",
		},
	)

	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wodboard_api_requests_total",
			Help: "Total number of API requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wodboard_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	WebsocketClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wodboard_websocket_clients",
			Help: "Connected websocket clients",
		},
	)
)

func init() {
	prometheus.MustRegister(TeamsTotal)
	prometheus.MustRegister(WorkoutsTotal)
	prometheus.MustRegister(ResultsRecorded)
	prometheus.MustRegister(ResultsRejected)
	prometheus.MustRegister(PointsRecomputeDuration)
	prometheus.MustRegister(HeatsAssigned)
	prometheus.MustRegister(LaneFallbacks)
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
	prometheus.MustRegister(WebsocketClients)
}

// Handler returns the Prometheus exposition handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer measures an operation for a histogram
type Timer struct {
	start time.Time
}

func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) ObserveDuration(h prometheus.Observer) time.Duration {
	d := time.Since(t.start)
	h.Observe(d.Seconds())
	return d
}
