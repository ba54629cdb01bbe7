package caches

import (
	"context"

	"query-metrics/internal/models"
)

// RecordCache memoizes the record set fetched for a (project, window) pair.
// Cached records are shared with every reader and must be treated as read-only.
//
// Every project has a generation that Invalidate advances. A reader takes the
// generation before fetching from the source and hands it to Set, which drops
// the write when the project was invalidated in between, so a fetch that
// started before an ingest can never repopulate the cache with pre-ingest data.
//
//go:generate mockgen -source=record_cache.go -destination=./mocks/record_cache_mock.go -package=mocks
type RecordCache interface {
	Generation(ctx context.Context, project string) (int64, error)
	// Get reports a miss with found == false and a nil error.
	Get(ctx context.Context, project string, window models.ReportWindow) (records []*models.QueryRecord, found bool, err error)
	Set(ctx context.Context, project string, window models.ReportWindow, generation int64, records []*models.QueryRecord) error
	// Invalidate drops every cached window of the project and advances its generation.
	Invalidate(ctx context.Context, project string) error
}

// CacheKey returns the key a project's window is cached under, e.g. "sales-bot:week".
func CacheKey(project string, window models.ReportWindow) string {
	return project + ":" + string(window)
}

func projectKeys(project string) []string {
	keys := make([]string, 0, len(models.ReportWindows))
	for _, window := range models.ReportWindows {
		keys = append(keys, CacheKey(project, window))
	}
	return keys
}
