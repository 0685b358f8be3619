// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file holds the Prometheus instrumentation. Every request is counted
// under its registered route; requests that ran a carpool operation are also
// counted under that operation, so a dashboard can tell a button-driven join
// from one sent to the REST route.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "carpool"

	// ctxKeyOperation is where handlers record the carpool operation a
	// request ran.
	ctxKeyOperation = "carpool.operation"

	// OperationNone labels requests that never reached a carpool operation
	// (health checks, bad input rejected before dispatch, unknown routes).
	OperationNone = "none"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route, and status code.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_inflight",
			Help:      "HTTP requests currently being served.",
		},
	)

	// Trip views are small; the top buckets only catch oversized trips.
	httpResponseSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_response_size_bytes",
			Help:      "HTTP response body size by route.",
			Buckets:   prometheus.ExponentialBuckets(128, 2, 10), // 128B..64KiB
		},
		[]string{"route"},
	)

	// httpOperations counts requests by the carpool operation they ran and
	// the resulting status.
	httpOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_operations_total",
			Help:      "Carpool operations served over HTTP by operation and status code.",
		},
		[]string{"operation", "status"},
	)
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, httpInflight, httpResponseSize, httpOperations)
}

// SetOperation records which carpool operation the request ran, e.g.
// "join_car" or "action_add_car". The last call wins.
func SetOperation(c *gin.Context, op string) {
	c.Set(ctxKeyOperation, op)
}

// Operation returns the operation recorded by SetOperation, or OperationNone.
func Operation(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyOperation); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return OperationNone
}

// Metrics instruments requests with Prometheus. The route label is the
// registered Gin pattern (c.FullPath) so ids never reach label values;
// unmatched requests share the "unmatched" route.
//
//	r.Use(middleware.Metrics())
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequests.WithLabelValues(c.Request.Method, route, status).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
		if size := c.Writer.Size(); size >= 0 {
			httpResponseSize.WithLabelValues(route).Observe(float64(size))
		}
		if op := Operation(c); op != OperationNone {
			httpOperations.WithLabelValues(op, status).Inc()
		}
	}
}
