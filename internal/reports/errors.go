package reports

import (
	"fmt"

	"query-metrics/internal/shared/svcerrors"
)

// ReportService errors
const (
	codeInvalidReportRequest = "RPT_1000"

	codeInternalFetchFailed       = "RPT_9000"
	codeInternalExportFailed      = "RPT_9001"
	codeInternalAggregationFailed = "RPT_9002"
)

func errInvalidReportRequest(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidReportRequest, msg, cause)
}

func errInternalFetchFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalFetchFailed, fmt.Errorf("recordSourceFailed: %w", cause))
}

func errInternalExportFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalExportFailed, fmt.Errorf("recordExportFailed: %w", cause))
}

// Stored records are validated at ingestion, so an aggregation rejection here is a data integrity fault.
func errInternalAggregationFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalAggregationFailed, fmt.Errorf("metricsAggregationFailed: %w", cause))
}
