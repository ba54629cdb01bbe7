package http

import (
	"net/http"

	"query-metrics/internal/models"
	"query-metrics/internal/reports"
)

const (
	formatJSON = "json"
	formatText = "text"
)

type summaryHandler struct {
	reportService reports.ReportService
	defaultWindow models.ReportWindow
}

func NewSummaryHandler(reportService reports.ReportService, defaultWindow models.ReportWindow) AppHttpHandler {
	return &summaryHandler{
		reportService: reportService,
		defaultWindow: defaultWindow,
	}
}

// Handle processes GET /projects/{project}/summary?window=&format= requests.
func (h *summaryHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	format := queryValue(r, queryFormat, formatJSON)
	if format != formatJSON && format != formatText {
		return errUnsupportedFormat(format)
	}

	window := models.ReportWindow(queryValue(r, queryWindow, string(h.defaultWindow)))
	report, err := h.reportService.Summarize(r.Context(), project(r), window)
	if err != nil {
		return err
	}

	if format == formatText {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(reports.FormatText(report)))
		return nil
	}

	writeJSON(w, http.StatusOK, report)
	return nil
}
