package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"query-metrics/internal/models"
	"query-metrics/internal/shared/filestorages"
)

// batchManifest is written once per batch before its records. Its create-if-not-exists
// write is what detects duplicate batches, similar to an S3 conditional PUT.
type batchManifest struct {
	BatchID     string   `json:"batchId"`
	Project     string   `json:"project"`
	RecordCount int      `json:"recordCount"`
	Days        []string `json:"days"`
}

// fileQueryRecordStore lays records out by project and UTC day so a window read
// only opens the days it covers:
//
//	query-batches/<project>/<batchId>.json          manifest
//	query-records/<project>/<yyyy-mm-dd>/<batchId>.json  that day's records of the batch
type fileQueryRecordStore struct {
	fileStorage filestorages.FileStorage
	manifestDir string
	recordDir   string
}

func NewFileQueryRecordStore(fileStorage filestorages.FileStorage) QueryRecordStore {
	return &fileQueryRecordStore{fileStorage: fileStorage, manifestDir: "query-batches", recordDir: "query-records"}
}

func (s *fileQueryRecordStore) PutBatch(ctx context.Context, batch *models.QueryBatch) error {
	byDay := make(map[string][]*models.QueryRecord)
	for _, record := range batch.Records {
		day := models.DayKey(record.Timestamp)
		byDay[day] = append(byDay[day], record)
	}
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	manifest := batchManifest{BatchID: batch.BatchID, Project: batch.Project, RecordCount: len(batch.Records), Days: days}
	manifestKey := fmt.Sprintf("%s/%s/%s.json", s.manifestDir, batch.Project, batch.BatchID)
	if err := s.putJSON(ctx, manifestKey, manifest, false); err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return ErrQueryBatchAlreadyExist
		}
		return fmt.Errorf("failed to put batch manifest: %w", err)
	}

	// Day parts may be rewritten: only a crash between manifest and parts leaves them behind.
	for _, day := range days {
		part := &models.QueryBatch{BatchID: batch.BatchID, Project: batch.Project, Records: byDay[day]}
		if err := s.putJSON(ctx, s.partKey(batch.Project, day, batch.BatchID), part, true); err != nil {
			return fmt.Errorf("failed to put query records for %s: %w", day, err)
		}
	}
	return nil
}

func (s *fileQueryRecordStore) ListRecords(ctx context.Context, project string, start, end time.Time) ([]*models.QueryRecord, error) {
	records := make([]*models.QueryRecord, 0)
	for _, day := range models.DaysBetween(start, end) {
		prefix := fmt.Sprintf("%s/%s/%s", s.recordDir, project, models.DayKey(day))
		keys, err := s.fileStorage.List(ctx, prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to list query records: %w", err)
		}
		for _, key := range keys {
			part, err := s.readPart(ctx, key)
			if err != nil {
				return nil, err
			}
			for _, record := range part.Records {
				if inRange(record.Timestamp, start, end) {
					records = append(records, record)
				}
			}
		}
	}
	return records, nil
}

func (s *fileQueryRecordStore) readPart(ctx context.Context, key string) (*models.QueryBatch, error) {
	readCloser, err := s.fileStorage.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get query records %q: %w", key, err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read query records %q: %w", key, err)
	}
	var part models.QueryBatch
	if err := json.Unmarshal(data, &part); err != nil {
		return nil, fmt.Errorf("failed to unmarshal query records %q: %w", key, err)
	}
	return &part, nil
}

func (s *fileQueryRecordStore) putJSON(ctx context.Context, key string, v any, allowOverwrite bool) error {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %q: %w", key, err)
	}
	_, err = s.fileStorage.Put(ctx, key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: allowOverwrite})
	return err
}

func (s *fileQueryRecordStore) partKey(project, day, batchID string) string {
	return fmt.Sprintf("%s/%s/%s/%s.json", s.recordDir, project, day, batchID)
}
