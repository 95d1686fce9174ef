package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	materialsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "batterylab_materials_created_total",
		Help: "Total number of materials uploaded.",
	})
	usersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "batterylab_users_registered_total",
		Help: "Total number of registered users.",
	})
	liveClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "batterylab_live_clients",
		Help: "Number of connected live feed clients.",
	})
)
