package models

// MetricsSummary is the aggregate report over one record collection.
// It is built once by the aggregator and must not be modified afterwards.
//
// Example JSON:
//
//	{
//	  "totalQueries": 3,
//	  "successfulQueries": 2,
//	  "failedQueries": 1,
//	  "unrecognizedStatuses": 0,
//	  "successRatePct": 66.66666666666667,
//	  "avgLlmLatencyMs": 150,
//	  "avgDbLatencyMs": null,
//	  "p95LlmLatencyMs": 195,
//	  "p95DbLatencyMs": null,
//	  "avgConfidence": 0.8,
//	  "userCounts": {"u-1": 2, "u-2": 1},
//	  "clientCounts": {"Chrome": 3},
//	  "queriesByDay": {"2025-12-28": 3}
//	}
type MetricsSummary struct {
	TotalQueries      int64 `json:"totalQueries"`
	SuccessfulQueries int64 `json:"successfulQueries"`
	FailedQueries     int64 `json:"failedQueries"`
	// UnrecognizedStatuses counts failures whose status was neither success nor failure.
	UnrecognizedStatuses int64 `json:"unrecognizedStatuses"`

	SuccessRatePct  Measurement `json:"successRatePct"`
	AvgLLMLatencyMs Measurement `json:"avgLlmLatencyMs"`
	AvgDBLatencyMs  Measurement `json:"avgDbLatencyMs"`
	P95LLMLatencyMs Measurement `json:"p95LlmLatencyMs"`
	P95DBLatencyMs  Measurement `json:"p95DbLatencyMs"`
	AvgConfidence   Measurement `json:"avgConfidence"`

	UserCounts   map[string]int64 `json:"userCounts"`
	ClientCounts map[string]int64 `json:"clientCounts"`
	QueriesByDay map[string]int64 `json:"queriesByDay"`
}

// HasData reports whether any query contributed to the summary.
func (s *MetricsSummary) HasData() bool {
	return s.TotalQueries > 0
}

// ActiveUsers is the number of distinct users in the summary.
func (s *MetricsSummary) ActiveUsers() int {
	return len(s.UserCounts)
}
