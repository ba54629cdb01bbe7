package caches

import (
	"context"

	"query-metrics/internal/events"
	"query-metrics/internal/shared/loggers"
	"query-metrics/internal/shared/metrics"
	"query-metrics/internal/shared/svcerrors"
)

// InvalidationService drops a project's cached record sets once new records are ingested for it.
//
//go:generate mockgen -source=invalidation_service.go -destination=./mocks/invalidation_service_mock.go -package=mocks
type InvalidationService interface {
	Invalidate(ctx context.Context, event *events.RecordsIngestedEvent) *svcerrors.ServiceError
}

type invalidationService struct {
	cache RecordCache
}

func NewInvalidationService(cache RecordCache) InvalidationService {
	return &invalidationService{cache: cache}
}

func (s *invalidationService) Invalidate(ctx context.Context, event *events.RecordsIngestedEvent) *svcerrors.ServiceError {
	logger := loggers.Ctx(ctx)
	logger.Debug().
		Str(loggers.FieldProject, event.Project).
		Str(loggers.FieldBatchID, event.BatchID).
		Msg("invalidating cached records")

	if err := s.cache.Invalidate(ctx, event.Project); err != nil {
		svcErr := errInternalInvalidateFailed(err)
		metricInvalidationsTotal.WithLabelValues(svcErr.Code).Inc()
		return svcErr
	}
	metricInvalidationsTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return nil
}
