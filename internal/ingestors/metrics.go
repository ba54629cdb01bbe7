package ingestors

import (
	"query-metrics/internal/shared/metrics"
)

const statusUnrecognized = "unrecognized"

var (
	metricBatchIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "batch_ingested_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	// Unknown statuses share one label value to keep cardinality bounded.
	metricRecordsIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "records_ingested_total",
		},
		[]string{"status"},
	)
)
