package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "batterylab_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "batterylab_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 2, 3, 5},
	}, []string{"method", "route"})
	httpInflight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "batterylab_http_requests_inflight",
		Help: "HTTP requests currently being served.",
	})
)

// Metrics instruments HTTP request counts and latency.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
