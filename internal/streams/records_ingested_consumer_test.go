package streams

import (
	"context"
	"errors"
	"testing"
	"time"

	"query-metrics/internal/caches/mocks"
	"query-metrics/internal/events"
	"query-metrics/internal/shared/svcerrors"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRecordsIngestedConsumer_InvalidatesInOrderPerProject(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := newPartitionedQueue[events.RecordsIngestedEvent](4, 16)
	mockService := mocks.NewMockInvalidationService(ctrl)

	done := make(chan struct{})
	var seen []string
	mockService.EXPECT().
		Invalidate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *events.RecordsIngestedEvent) *svcerrors.ServiceError {
			seen = append(seen, event.BatchID)
			if len(seen) == 3 {
				close(done)
			}
			return nil
		}).
		Times(3)

	consumer := NewRecordsIngestedConsumer(queue, mockService, zerolog.Nop())
	consumer.Start(context.Background())
	defer consumer.Stop()

	ctx := context.Background()
	for _, batchID := range []string{"b-1", "b-2", "b-3"} {
		require.NoError(t, queue.Publish(ctx, "sales-bot", events.RecordsIngestedEvent{Project: "sales-bot", BatchID: batchID}))
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("events were not consumed")
	}
	assert.Equal(t, []string{"b-1", "b-2", "b-3"}, seen)
}

func TestRecordsIngestedConsumer_SurvivesFailuresAndPanics(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := newPartitionedQueue[events.RecordsIngestedEvent](1, 16)
	mockService := mocks.NewMockInvalidationService(ctrl)

	done := make(chan struct{})
	gomock.InOrder(
		mockService.EXPECT().
			Invalidate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, event *events.RecordsIngestedEvent) *svcerrors.ServiceError {
				panic("boom")
			}),
		mockService.EXPECT().
			Invalidate(gomock.Any(), gomock.Any()).
			Return(svcerrors.NewInternalError("CACHE_9000", errors.New("redis down"))),
		mockService.EXPECT().
			Invalidate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, event *events.RecordsIngestedEvent) *svcerrors.ServiceError {
				close(done)
				return nil
			}),
	)

	consumer := NewRecordsIngestedConsumer(queue, mockService, zerolog.Nop())
	consumer.Start(context.Background())
	defer consumer.Stop()

	for i := 0; i < 3; i++ {
		require.NoError(t, queue.Publish(context.Background(), "sales-bot", events.RecordsIngestedEvent{Project: "sales-bot"}))
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker stopped after a failing event")
	}
}

func TestRecordsIngestedConsumer_StopsWhenQueueClosed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := newPartitionedQueue[events.RecordsIngestedEvent](2, 1)
	consumer := NewRecordsIngestedConsumer(queue, mocks.NewMockInvalidationService(ctrl), zerolog.Nop())
	consumer.Start(context.Background())

	queue.Close()

	stopped := make(chan struct{})
	go func() {
		consumer.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}
}
