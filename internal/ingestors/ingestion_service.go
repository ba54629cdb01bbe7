package ingestors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"query-metrics/internal/models"
	"query-metrics/internal/shared/loggers"
	"query-metrics/internal/shared/metrics"
	"query-metrics/internal/shared/ulid"
	"query-metrics/internal/shared/validators"
	"query-metrics/internal/stores"
	"query-metrics/internal/streams"
)

const (
	maxBatchBytes = 2 * 1024 * 1024
)

const (
	FormatJSON = "json"
)

// IngestResult represents the result of a batch ingestion operation.
type IngestResult struct {
	BatchID     string `json:"batchId"`
	RecordCount int    `json:"recordCount"`
}

// queryRecordInput is the wire shape of one record in an ingestion request.
type queryRecordInput struct {
	UserID       string     `json:"userId" validate:"required,max=256"`
	Status       string     `json:"status" validate:"required,max=64"`
	LLMLatencyMs *float64   `json:"llmLatencyMs" validate:"omitempty,gte=0"`
	DBLatencyMs  *float64   `json:"dbLatencyMs" validate:"omitempty,gte=0"`
	Confidence   *float64   `json:"confidenceScore" validate:"omitempty,gte=0,lte=1"`
	Timestamp    *time.Time `json:"timestamp" validate:"required"`
	UserAgent    string     `json:"userAgent" validate:"max=1024"`
}

//go:generate mockgen -source=ingestion_service.go -destination=./mocks/ingestion_service_mock.go -package=mocks
type IngestionService interface {
	// IngestBatch stores a JSON array of query records for project. The idempotency
	// key becomes the batch ID; a ULID is generated when it is blank.
	IngestBatch(ctx context.Context, project string, idempotencyKey string, format string, r io.Reader) (*IngestResult, error)
}

type ingestionService struct {
	recordStore             stores.QueryRecordStore
	recordsIngestedProducer streams.RecordsIngestedProducer
	validate                *validators.Validate
}

func NewIngestionService(recordStore stores.QueryRecordStore, recordsIngestedProducer streams.RecordsIngestedProducer) IngestionService {
	validate := validators.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	return &ingestionService{
		recordStore:             recordStore,
		recordsIngestedProducer: recordsIngestedProducer,
		validate:                validate,
	}
}

func (s *ingestionService) IngestBatch(ctx context.Context, project string, idempotencyKey string, format string, r io.Reader) (*IngestResult, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().
		Str(loggers.FieldProject, project).
		Msgf("started ingesting batch with idempotency key: %s, format: %s", idempotencyKey, format)

	batchID := strings.TrimSpace(idempotencyKey)
	if batchID == "" {
		batchID = ulid.NewULID()
	}
	if err := s.validateIdentity(project, batchID); err != nil {
		return nil, err
	}

	records, err := s.parseQueryRecords(format, r)
	if err != nil {
		return nil, err
	}

	batch := &models.QueryBatch{
		BatchID: batchID,
		Project: project,
		Records: records,
	}

	err = s.recordStore.PutBatch(ctx, batch)
	if err != nil {
		if errors.Is(err, stores.ErrQueryBatchAlreadyExist) {
			svcError := errBatchAlreadyProcessed(err)
			metricBatchIngestedTotal.WithLabelValues(svcError.Code).Inc()
			return nil, svcError
		}
		svcError := errInternalRecordStoreFailed(err)
		metricBatchIngestedTotal.WithLabelValues(svcError.Code).Inc()
		return nil, svcError
	}

	err = s.recordsIngestedProducer.Produce(ctx, batch)
	if err != nil {
		svcError := errInternalRecordsIngestedFailed(err)
		metricBatchIngestedTotal.WithLabelValues(svcError.Code).Inc()
		return nil, svcError
	}

	metricBatchIngestedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	for _, record := range records {
		status := string(record.Status)
		if !record.Status.IsKnown() {
			status = statusUnrecognized
		}
		metricRecordsIngestedTotal.WithLabelValues(status).Inc()
	}

	logger.Info().
		Str(loggers.FieldProject, project).
		Str(loggers.FieldBatchID, batchID).
		Int(loggers.FieldRecordCount, len(records)).
		Msg("query batch ingested")
	return &IngestResult{BatchID: batchID, RecordCount: len(records)}, nil
}

func (s *ingestionService) validateIdentity(project, batchID string) error {
	if project == "" {
		return errValidationFailed("project is required", nil)
	}
	if err := s.validate.Var(project, validators.TagProjectName); err != nil {
		return errValidationFailed(fmt.Sprintf("invalid project name: %q", project), err)
	}
	if err := s.validate.Var(batchID, validators.TagBatchID); err != nil {
		return errValidationFailed(fmt.Sprintf("invalid idempotency key: %q", batchID), err)
	}
	return nil
}

func (s *ingestionService) parseQueryRecords(format string, r io.Reader) ([]*models.QueryRecord, error) {
	if r == nil {
		return nil, errValidationFailed("empty request body", nil)
	}

	if !strings.Contains(strings.ToLower(format), FormatJSON) {
		return nil, errValidationFailed(fmt.Sprintf("unsupported input format: %q", format), nil)
	}

	buf, err := io.ReadAll(io.LimitReader(r, maxBatchBytes+1))
	if err != nil {
		return nil, errValidationFailed("failed to read request body", err)
	}
	if len(buf) > maxBatchBytes {
		return nil, errValidationFailed("batch too large: must be <= 2MB", nil)
	}

	var inputs []*queryRecordInput
	if err := json.Unmarshal(buf, &inputs); err != nil {
		return nil, errValidationFailed("invalid json: expected an array of query records", err)
	}
	if len(inputs) == 0 {
		return nil, errValidationFailed("query records cannot be empty", nil)
	}

	records := make([]*models.QueryRecord, 0, len(inputs))
	for i, input := range inputs {
		if input == nil {
			return nil, errValidationFailed(fmt.Sprintf("item at index %d: record is null", i), nil)
		}
		normalizeInput(input)
		if err := s.validate.Struct(input); err != nil {
			return nil, errValidationFailed(fmt.Sprintf("item at index %d: %s", i, describeValidationError(err)), err)
		}
		records = append(records, &models.QueryRecord{
			UserID:       input.UserID,
			Status:       models.QueryStatus(input.Status),
			LLMLatencyMs: input.LLMLatencyMs,
			DBLatencyMs:  input.DBLatencyMs,
			Timestamp:    input.Timestamp.UTC(),
			Client:       normalizeClient(input.UserAgent),

			ConfidenceScore: input.Confidence,
		})
	}
	return records, nil
}

// normalizeInput trims identifiers. Status case is preserved so unexpected
// values from the pipeline surface as unrecognized rather than being coerced.
func normalizeInput(input *queryRecordInput) {
	input.UserID = strings.TrimSpace(input.UserID)
	input.Status = strings.TrimSpace(input.Status)
	input.UserAgent = strings.TrimSpace(input.UserAgent)
}

func describeValidationError(err error) string {
	var validationErrors validators.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	fe := validationErrors[0]
	switch fe.Tag() {
	case "required":
		return "missing " + fe.Field()
	case "max":
		return fmt.Sprintf("%s too long: max %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}
