package streams

import (
	"query-metrics/internal/shared/metrics"
)

var (
	streamRecordsIngested              = "records_ingested"
	metricRecordsIngestedProducedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "records_ingested_published_total",
		},
		[]string{"stream_id"},
	)

	metricRecordsIngestedConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "records_ingested_consumed_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)
)
