package aggregators

import (
	"math"
	"sort"
	"strings"

	"query-metrics/internal/models"
)

// MetricsAggregator turns a record collection into a MetricsSummary.
//
// Compute is pure: it performs no I/O, keeps no state between calls and never
// modifies its input, so one aggregator may be shared by concurrent callers.
// The same records in any order produce identical summaries.
//
// Records are not deduplicated; two identical records are two queries. A nil
// record or a record without a user ID rejects the whole input, because the
// per-user breakdown has no key for it and a summary that silently skipped
// records would not add up.
//
//go:generate mockgen -source=metrics_aggregator.go -destination=./mocks/metrics_aggregator_mock.go -package=mocks
type MetricsAggregator interface {
	Compute(records []*models.QueryRecord) (*models.MetricsSummary, error)
}

type metricsAggregator struct{}

func NewMetricsAggregator() MetricsAggregator {
	return &metricsAggregator{}
}

func (a *metricsAggregator) Compute(records []*models.QueryRecord) (*models.MetricsSummary, error) {
	summary := &models.MetricsSummary{
		TotalQueries: int64(len(records)),
		UserCounts:   make(map[string]int64),
		ClientCounts: make(map[string]int64),
		QueriesByDay: make(map[string]int64),
	}

	var llmLatencies, dbLatencies, confidences []float64
	for i, record := range records {
		if record == nil {
			return nil, errMalformedRecord(i, "record is nil")
		}
		if strings.TrimSpace(record.UserID) == "" {
			return nil, errMalformedRecord(i, "missing userId")
		}

		// Anything that is not an explicit success is a failure, so an
		// unexpected status never inflates the success rate.
		switch record.Status {
		case models.StatusSuccess:
			summary.SuccessfulQueries++
		case models.StatusFailure:
			summary.FailedQueries++
		default:
			summary.FailedQueries++
			summary.UnrecognizedStatuses++
		}

		if v, ok := record.LLMLatency(); ok {
			llmLatencies = append(llmLatencies, v)
		}
		if v, ok := record.DBLatency(); ok {
			dbLatencies = append(dbLatencies, v)
		}
		if v, ok := record.Confidence(); ok {
			confidences = append(confidences, v)
		}

		summary.UserCounts[record.UserID]++
		if record.Client != "" {
			summary.ClientCounts[record.Client]++
		}
		if !record.Timestamp.IsZero() {
			summary.QueriesByDay[models.DayKey(record.Timestamp)]++
		}
	}

	summary.SuccessRatePct = percentage(summary.SuccessfulQueries, summary.TotalQueries)
	sort.Float64s(llmLatencies)
	sort.Float64s(dbLatencies)
	sort.Float64s(confidences)
	summary.AvgLLMLatencyMs = mean(llmLatencies)
	summary.AvgDBLatencyMs = mean(dbLatencies)
	summary.P95LLMLatencyMs = percentile(llmLatencies, 95)
	summary.P95DBLatencyMs = percentile(dbLatencies, 95)
	summary.AvgConfidence = mean(confidences)

	return summary, nil
}

func percentage(part, total int64) models.Measurement {
	if total == 0 {
		return models.NoData()
	}
	return models.Measured(float64(part) / float64(total) * 100)
}

// mean expects values sorted ascending; floating-point addition is not
// associative and the result must not depend on input order.
func mean(values []float64) models.Measurement {
	if len(values) == 0 {
		return models.NoData()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return models.Measured(sum / float64(len(values)))
}

// percentile interpolates linearly between the two closest ranks of the
// ascending values.
func percentile(sorted []float64, p float64) models.Measurement {
	if len(sorted) == 0 {
		return models.NoData()
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	return models.Measured(sorted[lo] + (sorted[hi]-sorted[lo])*(rank-float64(lo)))
}
