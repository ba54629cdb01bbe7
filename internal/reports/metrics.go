package reports

import (
	"query-metrics/internal/shared/metrics"
)

var (
	metricReportGeneratedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "generated_total",
		},
		[]string{"window", metrics.FieldErrorCode},
	)

	metricReportDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{"window"},
	)

	// metricUnrecognizedStatusTotal counts records whose status was neither
	// success nor failure, as seen by generated reports. A non-zero rate usually
	// means the producing pipeline started emitting a new status value.
	metricUnrecognizedStatusTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "unrecognized_status_total",
		},
		[]string{"window"},
	)

	metricRecordsExportedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "records_exported_total",
		},
		[]string{"window"},
	)
)
