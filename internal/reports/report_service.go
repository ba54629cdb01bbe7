package reports

import (
	"context"
	"fmt"
	"io"
	"time"

	"query-metrics/internal/aggregators"
	"query-metrics/internal/exporters"
	"query-metrics/internal/models"
	"query-metrics/internal/shared/loggers"
	"query-metrics/internal/shared/metrics"
	"query-metrics/internal/shared/svcerrors"
	"query-metrics/internal/shared/validators"
	"query-metrics/internal/sources"
)

//go:generate mockgen -source=report_service.go -destination=./mocks/report_service_mock.go -package=mocks
type ReportService interface {
	// Summarize computes the project's MetricsSummary over the trailing window.
	Summarize(ctx context.Context, project string, window models.ReportWindow) (*models.ProjectReport, error)
	// Export writes the raw records of the trailing window to w and returns how many were written.
	Export(ctx context.Context, project string, window models.ReportWindow, w io.Writer) (int, error)
}

type reportService struct {
	recordSource      sources.RecordSource
	metricsAggregator aggregators.MetricsAggregator
	recordExporter    exporters.RecordExporter
	validate          *validators.Validate
	now               func() time.Time
}

func NewReportService(recordSource sources.RecordSource, metricsAggregator aggregators.MetricsAggregator, recordExporter exporters.RecordExporter) ReportService {
	return &reportService{
		recordSource:      recordSource,
		metricsAggregator: metricsAggregator,
		recordExporter:    recordExporter,
		validate:          validators.New(),
		now:               time.Now,
	}
}

func (s *reportService) Summarize(ctx context.Context, project string, window models.ReportWindow) (*models.ProjectReport, error) {
	if err := s.validateRequest(project, window); err != nil {
		return nil, err
	}

	startedAt := time.Now()
	defer func() {
		metricReportDuration.WithLabelValues(string(window)).Observe(time.Since(startedAt).Seconds())
	}()

	logger := loggers.Ctx(ctx)
	asOf := s.now()
	periodStart, periodEnd := window.Bounds(asOf)

	records, err := s.recordSource.Fetch(ctx, project, window, asOf)
	if err != nil {
		return nil, s.fail(window, errInternalFetchFailed(err))
	}

	summary, err := s.metricsAggregator.Compute(records)
	if err != nil {
		return nil, s.fail(window, errInternalAggregationFailed(err))
	}

	if summary.UnrecognizedStatuses > 0 {
		logger.Warn().
			Str(loggers.FieldProject, project).
			Str(loggers.FieldWindow, string(window)).
			Int64("unrecognized_statuses", summary.UnrecognizedStatuses).
			Msg("records with unrecognized status counted as failures")
		metricUnrecognizedStatusTotal.WithLabelValues(string(window)).Add(float64(summary.UnrecognizedStatuses))
	}

	report := &models.ProjectReport{
		Project:     project,
		Window:      window,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Summary:     summary,
	}
	if !summary.HasData() {
		report.Message = models.NoDataMessage
	}

	logger.Debug().
		Str(loggers.FieldProject, project).
		Str(loggers.FieldWindow, string(window)).
		Int(loggers.FieldRecordCount, len(records)).
		Msg("report computed")
	metricReportGeneratedTotal.WithLabelValues(string(window), metrics.ValueNoError).Inc()
	return report, nil
}

func (s *reportService) Export(ctx context.Context, project string, window models.ReportWindow, w io.Writer) (int, error) {
	if err := s.validateRequest(project, window); err != nil {
		return 0, err
	}

	records, err := s.recordSource.Fetch(ctx, project, window, s.now())
	if err != nil {
		return 0, errInternalFetchFailed(err)
	}
	if err := s.recordExporter.Export(w, records); err != nil {
		return 0, errInternalExportFailed(err)
	}

	metricRecordsExportedTotal.WithLabelValues(string(window)).Add(float64(len(records)))
	return len(records), nil
}

func (s *reportService) validateRequest(project string, window models.ReportWindow) error {
	if err := s.validate.Var(project, "required,"+validators.TagProjectName); err != nil {
		return errInvalidReportRequest(fmt.Sprintf("invalid project name: %q", project), err)
	}
	if !window.IsValid() {
		return errInvalidReportRequest(fmt.Sprintf("invalid report window %q: must be one of day, week, month", window), nil)
	}
	return nil
}

func (s *reportService) fail(window models.ReportWindow, svcErr *svcerrors.ServiceError) *svcerrors.ServiceError {
	metricReportGeneratedTotal.WithLabelValues(string(window), svcErr.Code).Inc()
	return svcErr
}
