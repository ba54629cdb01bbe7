package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"

	"query-metrics/internal/models"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS query_batches (
		project      TEXT NOT NULL,
		batch_id     TEXT NOT NULL,
		record_count INTEGER NOT NULL,
		ingested_at  INTEGER NOT NULL,
		PRIMARY KEY (project, batch_id)
	)`,
	`CREATE TABLE IF NOT EXISTS query_records (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		project        TEXT NOT NULL,
		batch_id       TEXT NOT NULL,
		user_id        TEXT NOT NULL,
		status         TEXT NOT NULL,
		llm_latency_ms REAL,
		db_latency_ms  REAL,
		confidence     REAL,
		client         TEXT NOT NULL DEFAULT '',
		ts             INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_query_records_project_ts ON query_records (project, ts)`,
}

// OpenSQLite opens (creating if needed) the database file at path and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer keeps sqlite from returning SQLITE_BUSY under concurrent ingestion.
	db.SetMaxOpenConns(1)

	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return db, nil
}

type sqliteQueryRecordStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteQueryRecordStore(db *sql.DB) QueryRecordStore {
	return &sqliteQueryRecordStore{db: db, now: time.Now}
}

func (s *sqliteQueryRecordStore) PutBatch(ctx context.Context, batch *models.QueryBatch) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO query_batches (project, batch_id, record_count, ingested_at) VALUES (?, ?, ?, ?)`,
		batch.Project, batch.BatchID, len(batch.Records), s.now().UTC().UnixMicro())
	if err != nil {
		if isConstraintViolation(err) {
			return ErrQueryBatchAlreadyExist
		}
		return fmt.Errorf("failed to insert query batch: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO query_records
		(project, batch_id, user_id, status, llm_latency_ms, db_latency_ms, confidence, client, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range batch.Records {
		_, err = stmt.ExecContext(ctx,
			batch.Project, batch.BatchID, record.UserID, string(record.Status),
			nullableFloat(record.LLMLatency()), nullableFloat(record.DBLatency()), nullableFloat(record.Confidence()),
			record.Client, record.Timestamp.UTC().UnixMicro())
		if err != nil {
			return fmt.Errorf("failed to insert query record: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit query batch: %w", err)
	}
	return nil
}

func (s *sqliteQueryRecordStore) ListRecords(ctx context.Context, project string, start, end time.Time) ([]*models.QueryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT user_id, status, llm_latency_ms, db_latency_ms, confidence, client, ts
		FROM query_records
		WHERE project = ? AND ts >= ? AND ts <= ?
		ORDER BY ts, id`,
		project, start.UTC().UnixMicro(), end.UTC().UnixMicro())
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records := make([]*models.QueryRecord, 0)
	for rows.Next() {
		var (
			record     models.QueryRecord
			status     string
			llmLatency sql.NullFloat64
			dbLatency  sql.NullFloat64
			confidence sql.NullFloat64
			ts         int64
		)
		if err := rows.Scan(&record.UserID, &status, &llmLatency, &dbLatency, &confidence, &record.Client, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan query record: %w", err)
		}
		record.Status = models.QueryStatus(status)
		record.Timestamp = time.UnixMicro(ts).UTC()
		if llmLatency.Valid {
			record.LLMLatencyMs = &llmLatency.Float64
		}
		if dbLatency.Valid {
			record.DBLatencyMs = &dbLatency.Float64
		}
		if confidence.Valid {
			record.ConfidenceScore = &confidence.Float64
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate query records: %w", err)
	}
	return records, nil
}

func nullableFloat(v float64, ok bool) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: ok}
}

func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}
