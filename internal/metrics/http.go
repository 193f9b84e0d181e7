package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/allisson/outreach/internal/httputil"
)

// HTTPMetricsMiddleware records request counts and durations labelled by method,
// route pattern, status code and API error code. The error code separates, for
// example, admission_blocked from rate_limit_exceeded, which share status 429.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	meter := meterProvider.Meter(namespace)

	requestCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return passThrough
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return passThrough
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", routePattern(c)),
			attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
			attribute.String("error_code", c.GetString(httputil.ErrorCodeKey)),
		)
		requestCounter.Add(c.Request.Context(), 1, attrs)
		durationHisto.Record(c.Request.Context(), time.Since(start).Seconds(), attrs)
	}
}

func passThrough(c *gin.Context) {
	c.Next()
}

// routePattern keeps label cardinality bounded: lead ids never reach the path label.
func routePattern(c *gin.Context) string {
	if path := c.FullPath(); path != "" {
		return path
	}
	return "unknown"
}
