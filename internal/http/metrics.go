package http

import (
	"query-metrics/internal/shared/metrics"
)

var (
	// metricHTTPRequestsTotal counts requests per route pattern, not raw path.
	metricHTTPRequestsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "http_requests_total",
		},
		[]string{"method", "path", "status", metrics.FieldErrorCode},
	)

	metricHTTPRequestDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "request_latency",
			Buckets:   metrics.DefBuckets,
		},
		[]string{"method", "path", "status", metrics.FieldErrorCode},
	)

	// metricHTTPResponseBytes tracks body sizes; CSV exports dominate the upper buckets.
	metricHTTPResponseBytes = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "response_bytes",
			Buckets:   []float64{256, 1024, 16 * 1024, 256 * 1024, 1024 * 1024, 8 * 1024 * 1024},
		},
		[]string{"method", "path"},
	)
)
