package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	predictionsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "batterylab_predictions_generated_total",
		Help: "Total number of mock property predictions computed.",
	})
	candidatesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "batterylab_candidates_generated_total",
		Help: "Total number of candidate materials generated.",
	})
	eventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "batterylab_events_published_total",
		Help: "Total number of events published to Redis.",
	})
	eventsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "batterylab_events_failed_total",
		Help: "Total number of events that could not be published.",
	})
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "batterylab_cache_lookups_total",
		Help: "Redis cache lookups by result.",
	}, []string{"result"})
)
