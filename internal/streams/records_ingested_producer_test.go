package streams

import (
	"context"
	"testing"
	"time"

	"query-metrics/internal/events"
	"query-metrics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordsIngestedProducer_Produce(t *testing.T) {
	t.Parallel()

	queue := newPartitionedQueue[events.RecordsIngestedEvent](4, 8)
	producer := &recordsIngestedProducer{
		queue: queue,
		now:   func() time.Time { return time.Date(2025, 12, 28, 18, 3, 15, 0, time.UTC) },
	}

	batch := &models.QueryBatch{
		BatchID: "batch-123",
		Project: "sales-bot",
		Records: []*models.QueryRecord{
			{UserID: "u-1", Status: models.StatusSuccess},
			{UserID: "u-2", Status: models.StatusFailure},
		},
	}

	require.NoError(t, producer.Produce(context.Background(), batch))

	ch := queue.partitions[partitionIndex("sales-bot", 4)]
	require.Len(t, ch, 1)
	assert.Equal(t, events.RecordsIngestedEvent{
		Project:     "sales-bot",
		BatchID:     "batch-123",
		RecordCount: 2,
		IngestedAt:  time.Date(2025, 12, 28, 18, 3, 15, 0, time.UTC),
	}, <-ch)
}

func TestRecordsIngestedProducer_ContextCancelled(t *testing.T) {
	t.Parallel()

	queue := newPartitionedQueue[events.RecordsIngestedEvent](1, 0)
	producer := NewRecordsIngestedProducer(queue)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := producer.Produce(ctx, &models.QueryBatch{BatchID: "batch-123", Project: "sales-bot"})
	assert.ErrorIs(t, err, context.Canceled)
}
