package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"query-metrics/internal/aggregators"
	"query-metrics/internal/caches"
	"query-metrics/internal/events"
	"query-metrics/internal/exporters"
	internalhttp "query-metrics/internal/http"
	"query-metrics/internal/ingestors"
	"query-metrics/internal/models"
	"query-metrics/internal/reports"
	"query-metrics/internal/shared/configs"
	"query-metrics/internal/shared/loggers"
	"query-metrics/internal/sources"
	"query-metrics/internal/streams"
)

// startupTimeout bounds backend connection checks (sqlite schema, redis PING).
const startupTimeout = 10 * time.Second

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	recordsIngestedQueue    *streams.PartitionedQueue[events.RecordsIngestedEvent]
	recordsIngestedConsumer streams.RecordsIngestedConsumer
	backgroundCtx           context.Context
	backgroundCancel        context.CancelFunc

	closers []func() error
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "query-metrics").
		Logger()

	defaultWindow, err := models.ParseReportWindow(config.Report.DefaultWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize report window: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// Initialize record store and cache
	recordStore, closeStore, err := OpenRecordStore(ctx, config)
	if err != nil {
		return nil, err
	}
	recordCache, closeCache, err := OpenRecordCache(ctx, config)
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	// Initialize stream queue and cache invalidation consumer
	recordsIngestedQueue := streams.NewPartitionedQueue[events.RecordsIngestedEvent]()
	invalidationService := caches.NewInvalidationService(recordCache)
	consumerLogger := appLogger.With().Str(loggers.FieldComponent, "consumer").Logger()
	recordsIngestedConsumer := streams.NewRecordsIngestedConsumer(recordsIngestedQueue, invalidationService, consumerLogger)

	// Initialize ingestionService
	recordsIngestedProducer := streams.NewRecordsIngestedProducer(recordsIngestedQueue)
	ingestionService := ingestors.NewIngestionService(recordStore, recordsIngestedProducer)

	// Initialize reportService
	recordSource := sources.NewCachingRecordSource(sources.NewStoreRecordSource(recordStore), recordCache)
	recordExporter := exporters.NewRecordCSVExporter()
	reportService := reports.NewReportService(recordSource, aggregators.NewMetricsAggregator(), recordExporter)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(internalhttp.RouterDeps{
		IngestionService: ingestionService,
		ReportService:    reportService,
		RecordExporter:   recordExporter,
		DefaultWindow:    defaultWindow,
	}, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:                  config,
		appLogger:               appLogger,
		server:                  server,
		recordsIngestedQueue:    recordsIngestedQueue,
		recordsIngestedConsumer: recordsIngestedConsumer,
		closers:                 []func() error{closeCache, closeStore},
	}, nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting query-metrics service on port %d (log_level=%s, record_store=%s, cache=%s)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.RecordStore.Backend,
			app.config.Cache.Backend)

	// start background consumers
	app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())
	app.recordsIngestedConsumer.Start(app.backgroundCtx)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Stop background consumers; no handler can publish once the server is down
	app.recordsIngestedQueue.Close()
	app.recordsIngestedConsumer.Stop()
	if app.backgroundCancel != nil {
		app.backgroundCancel()
	}
	app.appLogger.Info().Msg("Background consumers stopped")

	// 3) Release backends
	var errs []error
	for _, closeBackend := range app.closers {
		if err := closeBackend(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("backend close failed: %w", err)
	}
	app.appLogger.Info().Msg("Backends closed")

	return nil
}
