package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"query-metrics/internal/exporters"
	"query-metrics/internal/models"
	"query-metrics/internal/reports/mocks"
	"query-metrics/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestExportHandler_Handle_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReportService := mocks.NewMockReportService(ctrl)
	mockReportService.EXPECT().
		Export(gomock.Any(), "sales-bot", models.WindowMonth, gomock.Any()).
		DoAndReturn(func(ctx context.Context, project string, window models.ReportWindow, w io.Writer) (int, error) {
			_, err := io.WriteString(w, "timestamp,user_id\n2025-12-28T18:03:12Z,u-1\n")
			return 1, err
		})

	handler := NewExportHandler(mockReportService, exporters.NewRecordCSVExporter(), models.WindowWeek).(*exportHandler)
	handler.now = func() time.Time { return time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC) }

	req := withProject(httptest.NewRequest(http.MethodGet, "/projects/sales-bot/export?window=month", nil), "sales-bot")
	rr := httptest.NewRecorder()

	require.NoError(t, handler.Handle(rr, req))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="sales-bot-month-20251228.csv"`, rr.Header().Get(headerContentDisposition))
	assert.Equal(t, "1", rr.Header().Get("X-Record-Count"))
	assert.Equal(t, "timestamp,user_id\n2025-12-28T18:03:12Z,u-1\n", rr.Body.String())
}

func TestExportHandler_Handle_ErrorLeavesResponseUntouched(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	expectedErr := svcerrors.NewInternalError("RPT_9000", assert.AnError)
	mockReportService := mocks.NewMockReportService(ctrl)
	mockReportService.EXPECT().
		Export(gomock.Any(), "sales-bot", models.WindowWeek, gomock.Any()).
		DoAndReturn(func(ctx context.Context, project string, window models.ReportWindow, w io.Writer) (int, error) {
			_, _ = io.WriteString(w, "timestamp,user_id\n")
			return 0, expectedErr
		})

	handler := NewExportHandler(mockReportService, exporters.NewRecordCSVExporter(), models.WindowWeek)
	req := withProject(httptest.NewRequest(http.MethodGet, "/projects/sales-bot/export", nil), "sales-bot")
	rr := httptest.NewRecorder()

	err := handler.Handle(rr, req)
	assert.Equal(t, expectedErr, err)
	assert.Empty(t, rr.Header().Get(headerContentDisposition))
	assert.Empty(t, rr.Body.String())
}
