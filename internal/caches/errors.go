package caches

import "query-metrics/internal/shared/svcerrors"

const (
	codeInvalidateFailed = "CACHE_9000"
)

func errInternalInvalidateFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInvalidateFailed, cause)
}
