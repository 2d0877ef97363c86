package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors:
// - http_requests_total: inbound requests by route, method and status
// - http_request_duration_seconds: inbound latency by route and method
// - upstream_requests_total: outbound calls by provider and outcome
// - upstream_request_duration_seconds: outbound latency by provider
var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP requests by path, method and status"},
		[]string{"path", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request latency in seconds", Buckets: prometheus.DefBuckets},
		[]string{"path", "method"},
	)
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "upstream_requests_total", Help: "Outbound calls by provider and outcome"},
		[]string{"provider", "outcome"},
	)
	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "upstream_request_duration_seconds", Help: "Outbound call latency in seconds", Buckets: prometheus.DefBuckets},
		[]string{"provider"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, UpstreamRequests, UpstreamLatency)
}

// Handler records request count and latency per matched route.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPLatency.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
		HTTPRequests.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// ObserveUpstream records one outbound call. outcome is "ok", "client_error",
// "server_error", "transport_error" or, for SDK calls, "error".
func ObserveUpstream(provider, outcome string, took time.Duration) {
	UpstreamRequests.WithLabelValues(provider, outcome).Inc()
	UpstreamLatency.WithLabelValues(provider).Observe(took.Seconds())
}

// Exposer serves the default Prometheus registry.
func Exposer() gin.HandlerFunc { return gin.WrapH(promhttp.Handler()) }
