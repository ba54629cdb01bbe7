package sources

import (
	"context"
	"time"

	"query-metrics/internal/caches"
	"query-metrics/internal/models"
	"query-metrics/internal/shared/loggers"
)

// cachingRecordSource serves repeated fetches of the same (project, window) from
// a RecordCache. Cache failures are logged and the fetch falls through to the
// inner source, so a cache outage only costs latency.
//
// A hit returns the set fetched for an earlier asOf of the same window, at most
// one TTL old.
type cachingRecordSource struct {
	inner RecordSource
	cache caches.RecordCache
}

func NewCachingRecordSource(inner RecordSource, cache caches.RecordCache) RecordSource {
	return &cachingRecordSource{inner: inner, cache: cache}
}

func (s *cachingRecordSource) Fetch(ctx context.Context, project string, window models.ReportWindow, asOf time.Time) ([]*models.QueryRecord, error) {
	key := caches.CacheKey(project, window)
	logger := loggers.Ctx(ctx)

	// The generation is read before the inner fetch; an ingest that lands
	// in between advances it and the fill below is dropped.
	generation, err := s.cache.Generation(ctx, project)
	if err != nil {
		logger.Warn().Err(err).Str(loggers.FieldCacheKey, key).Msg("record cache lookup failed")
		metricCacheLookupsTotal.WithLabelValues(lookupError).Inc()
		return s.inner.Fetch(ctx, project, window, asOf)
	}

	records, found, err := s.cache.Get(ctx, project, window)
	switch {
	case err != nil:
		logger.Warn().Err(err).Str(loggers.FieldCacheKey, key).Msg("record cache lookup failed")
		metricCacheLookupsTotal.WithLabelValues(lookupError).Inc()
	case found:
		metricCacheLookupsTotal.WithLabelValues(lookupHit).Inc()
		return records, nil
	default:
		metricCacheLookupsTotal.WithLabelValues(lookupMiss).Inc()
	}

	records, err = s.inner.Fetch(ctx, project, window, asOf)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, project, window, generation, records); err != nil {
		logger.Warn().Err(err).Str(loggers.FieldCacheKey, key).Msg("record cache store failed")
	}
	return records, nil
}
