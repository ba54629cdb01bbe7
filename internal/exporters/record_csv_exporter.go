package exporters

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"query-metrics/internal/models"
)

var csvHeader = []string{"timestamp", "user_id", "status", "llm_latency_ms", "db_latency_ms", "client", "confidence_score"}

// RecordExporter writes raw query records in a downloadable format.
//
//go:generate mockgen -source=record_csv_exporter.go -destination=./mocks/record_exporter_mock.go -package=mocks
type RecordExporter interface {
	Export(w io.Writer, records []*models.QueryRecord) error
	ContentType() string
	FileExtension() string
}

type recordCSVExporter struct{}

// NewRecordCSVExporter writes one CSV row per record, after a header row.
// Missing latencies and confidence scores are written as empty cells.
func NewRecordCSVExporter() RecordExporter {
	return &recordCSVExporter{}
}

func (e *recordCSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

func (e *recordCSVExporter) FileExtension() string { return "csv" }

func (e *recordCSVExporter) Export(w io.Writer, records []*models.QueryRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for i, record := range records {
		row := []string{
			record.Timestamp.UTC().Format(time.RFC3339Nano),
			record.UserID,
			string(record.Status),
			formatLatency(record.LLMLatency()),
			formatLatency(record.DBLatency()),
			record.Client,
			formatLatency(record.Confidence()),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func formatLatency(v float64, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
