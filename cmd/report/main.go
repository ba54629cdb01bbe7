// Command report prints the query-metrics report of one project to stdout and
// optionally exports the raw records of the window as CSV.
//
//	report -project sales-bot -window week -export sales-bot.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"query-metrics/internal/aggregators"
	"query-metrics/internal/app"
	"query-metrics/internal/exporters"
	"query-metrics/internal/models"
	"query-metrics/internal/reports"
	"query-metrics/internal/shared/configs"
	"query-metrics/internal/shared/loggers"
	"query-metrics/internal/sources"
)

func main() {
	configPath := flag.String("config", "./configs/configs.yml", "path to the configuration file")
	project := flag.String("project", "", "project to report on (required)")
	window := flag.String("window", "", "report window: day, week or month (defaults to report.default_window)")
	exportPath := flag.String("export", "", "write the raw records of the window to this CSV file")
	timeout := flag.Duration("timeout", 30*time.Second, "overall time limit")
	flag.Parse()

	if *project == "" {
		fmt.Fprintln(os.Stderr, "-project is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*configPath, *project, *window, *exportPath, *timeout); err != nil {
		fmt.Fprintf(os.Stderr, "report failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, project, window, exportPath string, timeout time.Duration) error {
	cfg, err := configs.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if window == "" {
		window = cfg.Report.DefaultWindow
	}

	// stdout carries the report; logs go to stderr
	logger, err := loggers.NewWithWriter(cfg.Log.Level, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = logger.With().
		Str(loggers.FieldApp, "query-metrics").
		Str(loggers.FieldComponent, "report-cli").
		Logger()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	ctx = logger.WithContext(ctx)

	recordStore, closeStore, err := app.OpenRecordStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	recordExporter := exporters.NewRecordCSVExporter()
	reportService := reports.NewReportService(
		sources.NewStoreRecordSource(recordStore),
		aggregators.NewMetricsAggregator(),
		recordExporter,
	)

	reportWindow := models.ReportWindow(window)
	report, err := reportService.Summarize(ctx, project, reportWindow)
	if err != nil {
		return err
	}
	fmt.Print(reports.FormatText(report))

	if exportPath == "" {
		return nil
	}
	return exportRecords(ctx, reportService, project, reportWindow, exportPath)
}

func exportRecords(ctx context.Context, reportService reports.ReportService, project string, window models.ReportWindow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	count, err := reportService.Export(ctx, project, window, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close export file: %w", closeErr)
	}
	if err != nil {
		return err
	}

	loggers.Ctx(ctx).Info().
		Str(loggers.FieldProject, project).
		Int(loggers.FieldRecordCount, count).
		Msgf("exported records to %s", path)
	return nil
}
