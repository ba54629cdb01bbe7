package http

import (
	"net/http"

	"query-metrics/internal/exporters"
	"query-metrics/internal/ingestors"
	"query-metrics/internal/models"
	"query-metrics/internal/reports"
	"query-metrics/internal/shared/loggers"
	"query-metrics/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// RouterDeps are the services the HTTP API is built on.
type RouterDeps struct {
	IngestionService ingestors.IngestionService
	ReportService    reports.ReportService
	RecordExporter   exporters.RecordExporter
	DefaultWindow    models.ReportWindow
}

// NewRouter creates and configures the HTTP router.
func NewRouter(deps RouterDeps, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	ingestQueriesHandler := NewIngestQueriesHandler(deps.IngestionService)
	summaryHandler := NewSummaryHandler(deps.ReportService, deps.DefaultWindow)
	exportHandler := NewExportHandler(deps.ReportService, deps.RecordExporter, deps.DefaultWindow)

	router.Route("/projects/{"+paramProject+"}", func(r chi.Router) {
		r.Post("/queries", errorHandlingAdapter(ingestQueriesHandler))
		r.Get("/summary", errorHandlingAdapter(summaryHandler))
		r.Get("/export", errorHandlingAdapter(exportHandler))
	})
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
