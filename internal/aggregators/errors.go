package aggregators

import (
	"fmt"

	"query-metrics/internal/shared/svcerrors"
)

const (
	codeMalformedRecord = "AGG_1000"
)

// errMalformedRecord returns an error when a record cannot be classified.
func errMalformedRecord(index int, reason string) *svcerrors.ServiceError {
	msg := fmt.Sprintf("malformed query record at index %d: %s", index, reason)
	return svcerrors.NewInvalidArgumentError(codeMalformedRecord, msg, nil)
}
