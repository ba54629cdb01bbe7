package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"sync"

	"query-metrics/internal/caches"
	"query-metrics/internal/events"
	"query-metrics/internal/shared/loggers"
	"query-metrics/internal/shared/metrics"
	"query-metrics/internal/shared/svcerrors"
	"query-metrics/internal/shared/ulid"
)

//go:generate mockgen -source=records_ingested_consumer.go -destination=./mocks/records_ingested_consumer_mock.go -package=mocks
type RecordsIngestedConsumer interface {
	Start(ctx context.Context)
	Stop()
}

type recordsIngestedConsumer struct {
	queue               *PartitionedQueue[events.RecordsIngestedEvent]
	invalidationService caches.InvalidationService

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewRecordsIngestedConsumer(queue *PartitionedQueue[events.RecordsIngestedEvent], invalidationService caches.InvalidationService, logger loggers.Logger) RecordsIngestedConsumer {
	return &recordsIngestedConsumer{
		queue:               queue,
		invalidationService: invalidationService,
		stopCh:              make(chan struct{}),
		logger:              logger,
	}
}

// Start spawns 1 worker goroutine per partition.
func (consumer *recordsIngestedConsumer) Start(ctx context.Context) {
	for partitionIndex := 0; partitionIndex < consumer.queue.PartitionCount(); partitionIndex++ {
		partitionIndex := partitionIndex
		ch := consumer.queue.partitions[partitionIndex]
		consumer.wg.Add(1)
		go func() {
			defer consumer.wg.Done()
			consumer.runPartitionWorker(ctx, partitionIndex, ch)
		}()
	}
}

// Stop waits for workers to stop (best called during app shutdown).
func (consumer *recordsIngestedConsumer) Stop() {
	consumer.stopOnce.Do(func() { close(consumer.stopCh) })
	consumer.wg.Wait()
}

func (consumer *recordsIngestedConsumer) runPartitionWorker(ctx context.Context, partitionIndex int, ch <-chan events.RecordsIngestedEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-consumer.stopCh:
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			consumer.handle(ctx, partitionIndex, &event)
		}
	}
}

func (consumer *recordsIngestedConsumer) handle(ctx context.Context, partitionIndex int, event *events.RecordsIngestedEvent) {
	ctx = consumer.logger.With().
		Str(loggers.FieldPartitionId, strconv.Itoa(partitionIndex)).
		Str(loggers.FieldRequestID, ulid.NewULID()).
		Str(loggers.FieldProject, event.Project).
		Logger().WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("consumer panic recovered")

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}
			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricRecordsIngestedConsumedTotal.WithLabelValues(streamRecordsIngested, svcErr.Code).Inc()
		}
	}()

	if svcErr := consumer.invalidationService.Invalidate(ctx, event); svcErr != nil {
		loggers.Ctx(ctx).Error().
			Err(svcErr).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Msg("failed to handle records ingested event")
		metricRecordsIngestedConsumedTotal.WithLabelValues(streamRecordsIngested, svcErr.Code).Inc()
		return
	}
	metricRecordsIngestedConsumedTotal.WithLabelValues(streamRecordsIngested, metrics.ValueNoError).Inc()
}
