package reports

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"query-metrics/internal/aggregators"
	aggregatormocks "query-metrics/internal/aggregators/mocks"
	"query-metrics/internal/exporters"
	exportermocks "query-metrics/internal/exporters/mocks"
	"query-metrics/internal/models"
	"query-metrics/internal/shared/svcerrors"
	sourcemocks "query-metrics/internal/sources/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC)

func ptr(v float64) *float64 { return &v }

func newTestReportService(source *sourcemocks.MockRecordSource, aggregator aggregators.MetricsAggregator, exporter exporters.RecordExporter) *reportService {
	service := NewReportService(source, aggregator, exporter).(*reportService)
	service.now = func() time.Time { return fixedNow }
	return service
}

func TestReportService_Summarize(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := sourcemocks.NewMockRecordSource(ctrl)
	source.EXPECT().Fetch(gomock.Any(), "sales-bot", models.WindowWeek, fixedNow).Return([]*models.QueryRecord{
		{UserID: "A", Status: models.StatusSuccess, LLMLatencyMs: ptr(100), Timestamp: fixedNow.Add(-time.Hour)},
		{UserID: "B", Status: models.StatusFailure, LLMLatencyMs: ptr(200), Timestamp: fixedNow.Add(-2 * time.Hour)},
		{UserID: "A", Status: "pending", DBLatencyMs: ptr(50), Timestamp: fixedNow.Add(-26 * time.Hour)},
	}, nil)

	service := newTestReportService(source, aggregators.NewMetricsAggregator(), exporters.NewRecordCSVExporter())
	report, err := service.Summarize(context.Background(), "sales-bot", models.WindowWeek)
	require.NoError(t, err)

	assert.Equal(t, "sales-bot", report.Project)
	assert.Equal(t, models.WindowWeek, report.Window)
	assert.Equal(t, fixedNow.Add(-7*24*time.Hour), report.PeriodStart)
	assert.Equal(t, fixedNow, report.PeriodEnd)
	assert.Empty(t, report.Message)

	summary := report.Summary
	assert.Equal(t, int64(3), summary.TotalQueries)
	assert.Equal(t, int64(1), summary.SuccessfulQueries)
	assert.Equal(t, int64(2), summary.FailedQueries)
	assert.Equal(t, int64(1), summary.UnrecognizedStatuses)
	assert.Equal(t, map[string]int64{"A": 2, "B": 1}, summary.UserCounts)

	llm, ok := summary.AvgLLMLatencyMs.Value()
	assert.True(t, ok)
	assert.Equal(t, 150.0, llm)
}

func TestReportService_Summarize_PeriodMatchesFetchedRange(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// every clock read returns a later instant
	tick := fixedNow
	service := NewReportService(nil, aggregators.NewMetricsAggregator(), exporters.NewRecordCSVExporter()).(*reportService)
	service.now = func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}

	var fetchedAsOf time.Time
	source := sourcemocks.NewMockRecordSource(ctrl)
	source.EXPECT().
		Fetch(gomock.Any(), "sales-bot", models.WindowWeek, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ models.ReportWindow, asOf time.Time) ([]*models.QueryRecord, error) {
			fetchedAsOf = asOf
			return []*models.QueryRecord{}, nil
		})
	service.recordSource = source

	report, err := service.Summarize(context.Background(), "sales-bot", models.WindowWeek)
	require.NoError(t, err)

	start, end := models.WindowWeek.Bounds(fetchedAsOf)
	assert.Equal(t, start, report.PeriodStart)
	assert.Equal(t, end, report.PeriodEnd)
}

func TestReportService_Summarize_NoData(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := sourcemocks.NewMockRecordSource(ctrl)
	source.EXPECT().Fetch(gomock.Any(), "sales-bot", models.WindowDay, fixedNow).Return([]*models.QueryRecord{}, nil)

	service := newTestReportService(source, aggregators.NewMetricsAggregator(), exporters.NewRecordCSVExporter())
	report, err := service.Summarize(context.Background(), "sales-bot", models.WindowDay)
	require.NoError(t, err)

	assert.Equal(t, models.NoDataMessage, report.Message)
	assert.False(t, report.Summary.HasData())
	assert.True(t, report.Summary.SuccessRatePct.IsNoData())
}

func TestReportService_Summarize_InvalidRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		project         string
		window          models.ReportWindow
		expectedMessage string
	}{
		{
			name:            "empty project",
			project:         "",
			window:          models.WindowWeek,
			expectedMessage: `invalid project name: ""`,
		},
		{
			name:            "project with slash",
			project:         "a/b",
			window:          models.WindowWeek,
			expectedMessage: `invalid project name: "a/b"`,
		},
		{
			name:            "unknown window",
			project:         "sales-bot",
			window:          "year",
			expectedMessage: `invalid report window "year": must be one of day, week, month`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := newTestReportService(sourcemocks.NewMockRecordSource(ctrl), aggregatormocks.NewMockMetricsAggregator(ctrl), exportermocks.NewMockRecordExporter(ctrl))

			report, err := service.Summarize(context.Background(), tt.project, tt.window)
			assert.Nil(t, report)
			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok, "expected ServiceError")
			assert.Equal(t, "RPT_1000", svcErr.Code)
			assert.Equal(t, "invalid_argument", svcErr.Category)
			assert.Equal(t, tt.expectedMessage, svcErr.Message)

			_, err = service.Export(context.Background(), tt.project, tt.window, io.Discard)
			svcErr, ok = svcerrors.AsServiceError(err)
			require.True(t, ok, "expected ServiceError")
			assert.Equal(t, "RPT_1000", svcErr.Code)
		})
	}
}

func TestReportService_Summarize_InternalErrors(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("store down")
	aggregateErr := errors.New("malformed query record at index 0: missing userId")

	tests := []struct {
		name         string
		fetchErr     error
		aggregateErr error
		expectedCode string
		expectedErr  error
	}{
		{name: "fetch failed", fetchErr: fetchErr, expectedCode: "RPT_9000", expectedErr: fetchErr},
		{name: "aggregation failed", aggregateErr: aggregateErr, expectedCode: "RPT_9002", expectedErr: aggregateErr},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			source := sourcemocks.NewMockRecordSource(ctrl)
			aggregator := aggregatormocks.NewMockMetricsAggregator(ctrl)
			source.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]*models.QueryRecord{{UserID: ""}}, tt.fetchErr)
			if tt.fetchErr == nil {
				aggregator.EXPECT().Compute(gomock.Any()).Return(nil, tt.aggregateErr)
			}

			service := newTestReportService(source, aggregator, exportermocks.NewMockRecordExporter(ctrl))
			report, err := service.Summarize(context.Background(), "sales-bot", models.WindowMonth)

			assert.Nil(t, report)
			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok, "expected ServiceError")
			assert.Equal(t, tt.expectedCode, svcErr.Code)
			assert.True(t, svcErr.IsInternalError())
			assert.Equal(t, "internal server error", svcErr.Message)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestReportService_Export(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	records := []*models.QueryRecord{
		{UserID: "A", Status: models.StatusSuccess, Timestamp: fixedNow.Add(-time.Hour)},
		{UserID: "B", Status: models.StatusFailure, Timestamp: fixedNow.Add(-2 * time.Hour)},
	}
	source := sourcemocks.NewMockRecordSource(ctrl)
	source.EXPECT().Fetch(gomock.Any(), "sales-bot", models.WindowWeek, fixedNow).Return(records, nil)

	service := newTestReportService(source, aggregatormocks.NewMockMetricsAggregator(ctrl), exporters.NewRecordCSVExporter())

	var buf bytes.Buffer
	n, err := service.Export(context.Background(), "sales-bot", models.WindowWeek, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "timestamp,user_id,status,llm_latency_ms,db_latency_ms,client,confidence_score\n"+
		"2025-12-28T17:00:00Z,A,success,,,,\n"+
		"2025-12-28T16:00:00Z,B,failure,,,,\n", buf.String())
}

func TestReportService_Export_Errors(t *testing.T) {
	t.Parallel()

	t.Run("fetch failed", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		source := sourcemocks.NewMockRecordSource(ctrl)
		source.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("store down"))

		service := newTestReportService(source, aggregatormocks.NewMockMetricsAggregator(ctrl), exportermocks.NewMockRecordExporter(ctrl))
		_, err := service.Export(context.Background(), "sales-bot", models.WindowWeek, io.Discard)

		svcErr, ok := svcerrors.AsServiceError(err)
		require.True(t, ok, "expected ServiceError")
		assert.Equal(t, "RPT_9000", svcErr.Code)
	})

	t.Run("export failed", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		source := sourcemocks.NewMockRecordSource(ctrl)
		exporter := exportermocks.NewMockRecordExporter(ctrl)
		source.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]*models.QueryRecord{}, nil)
		exporter.EXPECT().Export(gomock.Any(), gomock.Any()).Return(errors.New("broken pipe"))

		service := newTestReportService(source, aggregatormocks.NewMockMetricsAggregator(ctrl), exporter)
		_, err := service.Export(context.Background(), "sales-bot", models.WindowWeek, io.Discard)

		svcErr, ok := svcerrors.AsServiceError(err)
		require.True(t, ok, "expected ServiceError")
		assert.Equal(t, "RPT_9001", svcErr.Code)
	})
}
