package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"query-metrics/internal/exporters"
	"query-metrics/internal/ingestors"
	ingestormocks "query-metrics/internal/ingestors/mocks"
	"query-metrics/internal/models"
	reportmocks "query-metrics/internal/reports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNewRouter_Routes(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIngestionService := ingestormocks.NewMockIngestionService(ctrl)
	mockReportService := reportmocks.NewMockReportService(ctrl)
	router := NewRouter(RouterDeps{
		IngestionService: mockIngestionService,
		ReportService:    mockReportService,
		RecordExporter:   exporters.NewRecordCSVExporter(),
		DefaultWindow:    models.WindowWeek,
	}, zerolog.Nop())

	mockIngestionService.EXPECT().
		IngestBatch(gomock.Any(), "sales-bot", "", "application/json", gomock.Any()).
		Return(&ingestors.IngestResult{BatchID: "b", RecordCount: 1}, nil)
	mockReportService.EXPECT().
		Summarize(gomock.Any(), "sales-bot", models.WindowWeek).
		Return(testReport(models.WindowWeek, &models.MetricsSummary{}), nil)
	mockReportService.EXPECT().
		Export(gomock.Any(), "sales-bot", models.WindowWeek, gomock.Any()).
		Return(0, nil)

	tests := []struct {
		method         string
		target         string
		body           string
		expectedStatus int
	}{
		{method: http.MethodPost, target: "/projects/sales-bot/queries", body: `[]`, expectedStatus: http.StatusAccepted},
		{method: http.MethodGet, target: "/projects/sales-bot/summary", expectedStatus: http.StatusOK},
		{method: http.MethodGet, target: "/projects/sales-bot/export", expectedStatus: http.StatusOK},
		{method: http.MethodGet, target: "/metrics", expectedStatus: http.StatusOK},
		{method: http.MethodGet, target: "/projects/sales-bot/unknown", expectedStatus: http.StatusNotFound},
		{method: http.MethodDelete, target: "/projects/sales-bot/queries", expectedStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			req.Header.Set(headerContentType, "application/json")
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.NotEmpty(t, req.Header.Get(headerRequestID), "request id middleware should run")
		})
	}
}
