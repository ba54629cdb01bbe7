package ingestors

import (
	"fmt"

	"query-metrics/internal/shared/svcerrors"
)

// IngestionService errors
const (
	codeValidationFailed      = "ING_1000"
	codeBatchAlreadyProcessed = "ING_1001"

	codeInternalRecordStoreFailed     = "ING_9000"
	codeInternalRecordsIngestedFailed = "ING_9001"
)

func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

func errBatchAlreadyProcessed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeBatchAlreadyProcessed, "query batch already processed", cause)
}

func errInternalRecordStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalRecordStoreFailed, fmt.Errorf("recordStoreFailed: %w", cause))
}

func errInternalRecordsIngestedFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalRecordsIngestedFailed, fmt.Errorf("recordsIngestedPublishFailed: %w", cause))
}
