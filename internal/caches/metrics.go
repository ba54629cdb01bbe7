package caches

import (
	"query-metrics/internal/shared/metrics"
)

var (
	metricInvalidationsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCache,
			Name:      "invalidations_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
