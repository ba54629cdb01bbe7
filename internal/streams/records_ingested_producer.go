package streams

import (
	"context"
	"time"

	"query-metrics/internal/events"
	"query-metrics/internal/models"
)

// RecordsIngestedProducer announces stored batches on the RecordsIngested stream.
//
// Events are partitioned by project, so every event of one project is handled by
// the same consumer worker in publish order, while different projects are
// processed in parallel.
//
//go:generate mockgen -source=records_ingested_producer.go -destination=./mocks/records_ingested_producer_mock.go -package=mocks
type RecordsIngestedProducer interface {
	Produce(ctx context.Context, batch *models.QueryBatch) error
}

type recordsIngestedProducer struct {
	queue *PartitionedQueue[events.RecordsIngestedEvent]
	now   func() time.Time
}

func NewRecordsIngestedProducer(queue *PartitionedQueue[events.RecordsIngestedEvent]) RecordsIngestedProducer {
	return &recordsIngestedProducer{queue: queue, now: time.Now}
}

func (producer *recordsIngestedProducer) Produce(ctx context.Context, batch *models.QueryBatch) error {
	event := events.RecordsIngestedEvent{
		Project:     batch.Project,
		BatchID:     batch.BatchID,
		RecordCount: len(batch.Records),
		IngestedAt:  producer.now().UTC(),
	}
	if err := producer.queue.Publish(ctx, event.Project, event); err != nil {
		return err
	}
	metricRecordsIngestedProducedTotal.WithLabelValues(streamRecordsIngested).Inc()
	return nil
}
