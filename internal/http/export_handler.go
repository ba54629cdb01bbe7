package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"query-metrics/internal/exporters"
	"query-metrics/internal/models"
	"query-metrics/internal/reports"
)

type exportHandler struct {
	reportService  reports.ReportService
	recordExporter exporters.RecordExporter
	defaultWindow  models.ReportWindow
	now            func() time.Time
}

func NewExportHandler(reportService reports.ReportService, recordExporter exporters.RecordExporter, defaultWindow models.ReportWindow) AppHttpHandler {
	return &exportHandler{
		reportService:  reportService,
		recordExporter: recordExporter,
		defaultWindow:  defaultWindow,
		now:            time.Now,
	}
}

// Handle processes GET /projects/{project}/export?window= requests.
// The export is buffered so a failure can still be reported as a JSON error.
func (h *exportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	projectName := project(r)
	window := models.ReportWindow(queryValue(r, queryWindow, string(h.defaultWindow)))

	var buf bytes.Buffer
	count, err := h.reportService.Export(r.Context(), projectName, window, &buf)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("%s-%s-%s.%s", projectName, window, h.now().UTC().Format("20060102"), h.recordExporter.FileExtension())
	w.Header().Set("Content-Type", h.recordExporter.ContentType())
	w.Header().Set(headerContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("X-Record-Count", strconv.Itoa(count))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
	return nil
}
