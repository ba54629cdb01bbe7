package sources

import (
	"context"
	"time"

	"query-metrics/internal/models"
	"query-metrics/internal/stores"
)

// RecordSource supplies the records a report is computed from: every record of
// the project whose timestamp lies in window.Bounds(asOf). Callers pass asOf so
// the fetched range and the reported period come from the same instant.
//
//go:generate mockgen -source=record_source.go -destination=./mocks/record_source_mock.go -package=mocks
type RecordSource interface {
	Fetch(ctx context.Context, project string, window models.ReportWindow, asOf time.Time) ([]*models.QueryRecord, error)
}

type storeRecordSource struct {
	store stores.QueryRecordStore
}

func NewStoreRecordSource(store stores.QueryRecordStore) RecordSource {
	return &storeRecordSource{store: store}
}

func (s *storeRecordSource) Fetch(ctx context.Context, project string, window models.ReportWindow, asOf time.Time) ([]*models.QueryRecord, error) {
	start, end := window.Bounds(asOf)
	return s.store.ListRecords(ctx, project, start, end)
}
