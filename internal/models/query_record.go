package models

import (
	"math"
	"time"
)

// QueryStatus is the outcome of one conversational query.
type QueryStatus string

const (
	StatusSuccess QueryStatus = "success"
	StatusFailure QueryStatus = "failure"
)

// IsKnown reports whether s is one of the two recognized outcomes.
func (s QueryStatus) IsKnown() bool {
	return s == StatusSuccess || s == StatusFailure
}

// QueryRecord is one logged conversational query.
//
// Example JSON:
//
//	{
//	  "userId": "u-4821",
//	  "status": "success",
//	  "llmLatencyMs": 812.5,
//	  "dbLatencyMs": 43,
//	  "timestamp": "2025-12-28T18:03:12Z",
//	  "client": "Chrome",
//	  "confidenceScore": 0.92
//	}
//
// Latencies are pointers because a query that fails before reaching the model
// or the database has no measurement for that stage.
type QueryRecord struct {
	UserID       string      `json:"userId"`
	Status       QueryStatus `json:"status"`
	LLMLatencyMs *float64    `json:"llmLatencyMs,omitempty"`
	DBLatencyMs  *float64    `json:"dbLatencyMs,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
	Client       string      `json:"client,omitempty"`
	// ConfidenceScore is the pipeline's self-reported answer confidence in [0, 1].
	ConfidenceScore *float64 `json:"confidenceScore,omitempty"`
}

// LLMLatency returns the LLM latency when present and finite.
func (r *QueryRecord) LLMLatency() (float64, bool) {
	return finite(r.LLMLatencyMs)
}

// DBLatency returns the database latency when present and finite.
func (r *QueryRecord) DBLatency() (float64, bool) {
	return finite(r.DBLatencyMs)
}

// Confidence returns the confidence score when present and finite.
func (r *QueryRecord) Confidence() (float64, bool) {
	return finite(r.ConfidenceScore)
}

func finite(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	return *v, true
}

// QueryBatch is one ingested set of records for a project. The batch ID is the
// client's idempotency key, so a retried upload is recognized as a duplicate.
type QueryBatch struct {
	BatchID string         `json:"batchId"`
	Project string         `json:"project"`
	Records []*QueryRecord `json:"records"`
}
