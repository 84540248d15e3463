package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	requestLifecycleTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_request_transitions_total",
			Help: "Delivery request lifecycle transitions by resulting status.",
		},
		[]string{"status"},
	)

	acceptConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "delivery_accept_conflicts_total",
			Help: "Accept attempts that lost the race for an open request.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		requestLifecycleTotal,
		acceptConflictsTotal,
	)
}

// metricsMiddleware records request counts and latency per route.
func metricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		path := c.Path()
		if path == "" {
			path = c.Request().URL.Path
		}

		httpRequestDuration.WithLabelValues(c.Request().Method, path).
			Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(
			c.Request().Method, path, strconv.Itoa(c.Response().Status),
		).Inc()

		return err
	}
}

// metricsHandler exposes the prometheus registry.
func metricsHandler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
