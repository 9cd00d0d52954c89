package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accountd_http_requests_total",
		Help: "Total number of HTTP requests by method, path and status code.",
	}, []string{"method", "path", "code"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "accountd_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// Metrics records request counts and latencies for every route.
func Metrics() gin.HandlerFunc {
	return func(gctx *gin.Context) {
		path := gctx.FullPath()
		if path == "" {
			path = "unmatched"
		}

		timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues(gctx.Request.Method, path))
		defer timer.ObserveDuration()

		gctx.Next()

		httpRequestsTotal.
			WithLabelValues(gctx.Request.Method, path, strconv.Itoa(gctx.Writer.Status())).
			Inc()
	}
}
