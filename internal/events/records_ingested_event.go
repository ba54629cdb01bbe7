package events

import "time"

// RecordsIngestedEvent announces that a batch of query records was stored for a project.
// Consumers use it to drop anything derived from the project's previous record set.
//
// Example JSON:
//
//	{
//	  "project": "sales-bot",
//	  "batchId": "01ARZ3NDEKTSV4RRFFQ69G5FAV",
//	  "recordCount": 120,
//	  "ingestedAt": "2025-12-28T18:03:15Z"
//	}
type RecordsIngestedEvent struct {
	Project     string    `json:"project"`
	BatchID     string    `json:"batchId"`
	RecordCount int       `json:"recordCount"`
	IngestedAt  time.Time `json:"ingestedAt"`
}
