package stores

import (
	"context"
	"errors"
	"time"

	"query-metrics/internal/models"
)

var (
	ErrQueryBatchAlreadyExist = errors.New("query batch already exists")
)

// QueryRecordStore persists ingested query batches and reads records back by time range.
//
// PutBatch is create-if-not-exists on (project, batch ID): the second Put of the
// same batch fails with ErrQueryBatchAlreadyExist, which makes ingestion
// idempotent for clients that retry with the same idempotency key.
//
//go:generate mockgen -source=query_record_store.go -destination=./mocks/query_record_store_mock.go -package=mocks
type QueryRecordStore interface {
	PutBatch(ctx context.Context, batch *models.QueryBatch) error
	// ListRecords returns the project's records with start <= timestamp <= end.
	ListRecords(ctx context.Context, project string, start, end time.Time) ([]*models.QueryRecord, error)
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
