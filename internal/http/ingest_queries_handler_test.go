package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"query-metrics/internal/ingestors"
	ingestormocks "query-metrics/internal/ingestors/mocks"
	"query-metrics/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// withProject attaches a chi route context carrying the {project} parameter.
func withProject(r *http.Request, projectName string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(paramProject, projectName)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestIngestQueriesHandler_Handle_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIngestionService := ingestormocks.NewMockIngestionService(ctrl)
	handler := NewIngestQueriesHandler(mockIngestionService)

	req := httptest.NewRequest(http.MethodPost, "/projects/sales-bot/queries", bytes.NewReader([]byte(`[]`)))
	req.Header.Set(headerIdempotencyKey, "key123")
	req.Header.Set(headerContentType, "application/json")
	req = withProject(req, "sales-bot")
	rr := httptest.NewRecorder()

	mockIngestionService.EXPECT().
		IngestBatch(
			gomock.Any(),
			"sales-bot",
			"key123",
			"application/json",
			gomock.Any(),
		).
		Return(&ingestors.IngestResult{BatchID: "key123", RecordCount: 2}, nil)

	err := handler.Handle(rr, req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"batchId": "key123", "recordCount": float64(2)}, body)
}

func TestIngestQueriesHandler_Handle_Error(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIngestionService := ingestormocks.NewMockIngestionService(ctrl)
	handler := NewIngestQueriesHandler(mockIngestionService)

	req := httptest.NewRequest(http.MethodPost, "/projects/sales-bot/queries", bytes.NewReader([]byte(`[]`)))
	req.Header.Set(headerContentType, "application/json")
	req = withProject(req, "sales-bot")
	rr := httptest.NewRecorder()

	expectedErr := svcerrors.NewInvalidArgumentError("TEST_1000", "validation failed", nil)
	mockIngestionService.EXPECT().
		IngestBatch(gomock.Any(), "sales-bot", "", "application/json", gomock.Any()).
		Return(nil, expectedErr)

	err := handler.Handle(rr, req)

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "TEST_1000", svcErr.Code)
	// Status should not be set when error occurs
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())
}
