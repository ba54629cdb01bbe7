package reports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	"query-metrics/internal/models"
)

const (
	notAvailable   = "N/A"
	topUsersLimit  = 5
	chartHeight    = 6
	periodLayout   = "2006-01-02 15:04 MST"
	labelColumnLen = 26
)

var reportTitles = map[models.ReportWindow]string{
	models.WindowDay:   "Daily Query Metrics",
	models.WindowWeek:  "Weekly Query Metrics",
	models.WindowMonth: "Monthly Query Metrics",
}

// FormatText renders a report as plain text for terminals and e-mail digests.
// Missing measurements print as N/A; an empty window prints only the no-data message.
func FormatText(report *models.ProjectReport) string {
	var b strings.Builder
	summary := report.Summary

	fmt.Fprintf(&b, "%s: %s\n", reportTitles[report.Window], report.Project)
	fmt.Fprintf(&b, "Period: %s → %s\n", report.PeriodStart.UTC().Format(periodLayout), report.PeriodEnd.UTC().Format(periodLayout))

	if summary == nil || !summary.HasData() {
		fmt.Fprintf(&b, "\n%s\n", models.NoDataMessage)
		return b.String()
	}

	b.WriteString("\nUsage:\n")
	writeLine(&b, "Total NL→SQL queries:", fmt.Sprintf("%d", summary.TotalQueries))
	writeLine(&b, "Active users:", fmt.Sprintf("%d", summary.ActiveUsers()))

	b.WriteString("\nPerformance:\n")
	writeLine(&b, "Avg LLM latency (ms):", summary.AvgLLMLatencyMs.Format("%.2f", notAvailable))
	writeLine(&b, "Avg DB latency (ms):", summary.AvgDBLatencyMs.Format("%.2f", notAvailable))
	writeLine(&b, "p95 LLM latency (ms):", summary.P95LLMLatencyMs.Format("%.2f", notAvailable))
	writeLine(&b, "p95 DB latency (ms):", summary.P95DBLatencyMs.Format("%.2f", notAvailable))

	b.WriteString("\nQuality & Reliability:\n")
	writeLine(&b, "Success rate:", summary.SuccessRatePct.Format("%.2f%%", notAvailable))
	writeLine(&b, "Avg confidence:", summary.AvgConfidence.Format("%.2f", notAvailable))
	writeLine(&b, "Successful queries:", fmt.Sprintf("%d", summary.SuccessfulQueries))
	writeLine(&b, "Failed queries:", fmt.Sprintf("%d", summary.FailedQueries))
	if summary.UnrecognizedStatuses > 0 {
		writeLine(&b, "Unrecognized statuses:", fmt.Sprintf("%d (counted as failed)", summary.UnrecognizedStatuses))
	}

	b.WriteString("\nTop users:\n")
	for _, entry := range topCounts(summary.UserCounts, topUsersLimit) {
		writeLine(&b, entry.key, fmt.Sprintf("%d", entry.count))
	}

	if len(summary.ClientCounts) > 0 {
		b.WriteString("\nClients:\n")
		for _, entry := range topCounts(summary.ClientCounts, 0) {
			writeLine(&b, entry.key, fmt.Sprintf("%d", entry.count))
		}
	}

	if chart := dailyVolumeChart(report); chart != "" {
		fmt.Fprintf(&b, "\n%s\n", chart)
	}
	return b.String()
}

func writeLine(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, " • %-*s %s\n", labelColumnLen, label, value)
}

type keyCount struct {
	key   string
	count int64
}

// topCounts orders counts descending with ties broken by key. limit <= 0 keeps all.
func topCounts(counts map[string]int64, limit int) []keyCount {
	entries := make([]keyCount, 0, len(counts))
	for key, count := range counts {
		entries = append(entries, keyCount{key: key, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// dailyVolumeChart plots queries per UTC day across the report period, zero-filling quiet days.
func dailyVolumeChart(report *models.ProjectReport) string {
	days := models.DaysBetween(report.PeriodStart, report.PeriodEnd)
	if len(days) < 2 {
		return ""
	}

	data := make([]float64, len(days))
	for i, day := range days {
		data[i] = float64(report.Summary.QueriesByDay[models.DayKey(day)])
	}

	caption := fmt.Sprintf("Queries per day (%s to %s)", models.DayKey(days[0]), models.DayKey(days[len(days)-1]))
	return asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	)
}
