package http

import (
	"fmt"

	"query-metrics/internal/shared/svcerrors"
)

const (
	codeUnsupportedFormat = "HTTP_1000"
)

func errUnsupportedFormat(format string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeUnsupportedFormat, fmt.Sprintf("unsupported report format %q: must be json or text", format), nil)
}
