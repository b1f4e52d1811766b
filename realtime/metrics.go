package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	eventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wodboard_events_published_total",
			Help: "Change events delivered to subscribers by type",
		},
		[]string{"type"},
	)

	eventsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wodboard_events_dropped_total",
			Help: "Change events dropped because a queue or subscriber buffer was full",
		},
	)
)

func init() {
	prometheus.MustRegister(eventsPublished)
	prometheus.MustRegister(eventsDropped)
}
