package models

import "time"

// NoDataMessage is shown instead of statistics when a window has no queries.
const NoDataMessage = "No queries recorded for this project in the selected window."

// ProjectReport is a MetricsSummary together with the project and period it describes.
type ProjectReport struct {
	Project     string          `json:"project"`
	Window      ReportWindow    `json:"window"`
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	Summary     *MetricsSummary `json:"summary"`
	// Message is set to NoDataMessage when Summary has no data.
	Message string `json:"message,omitempty"`
}
