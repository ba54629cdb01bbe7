package models

import (
	"fmt"
	"time"
)

// ReportWindow is the trailing time range a report covers.
type ReportWindow string

const (
	WindowDay   ReportWindow = "day"
	WindowWeek  ReportWindow = "week"
	WindowMonth ReportWindow = "month"
)

// ReportWindows lists every supported window.
var ReportWindows = []ReportWindow{WindowDay, WindowWeek, WindowMonth}

const dayKeyLayout = "2006-01-02"

// ParseReportWindow converts s into a ReportWindow.
func ParseReportWindow(s string) (ReportWindow, error) {
	w := ReportWindow(s)
	if !w.IsValid() {
		return "", fmt.Errorf("invalid report window %q: must be one of day, week, month", s)
	}
	return w, nil
}

func (w ReportWindow) IsValid() bool {
	switch w {
	case WindowDay, WindowWeek, WindowMonth:
		return true
	}
	return false
}

func (w ReportWindow) Duration() time.Duration {
	switch w {
	case WindowDay:
		return 24 * time.Hour
	case WindowWeek:
		return 7 * 24 * time.Hour
	case WindowMonth:
		return 30 * 24 * time.Hour
	default:
		panic(fmt.Sprintf("invalid ReportWindow: %q", w))
	}
}

// Bounds returns the inclusive [start, end] range of the window ending at now, in UTC.
func (w ReportWindow) Bounds(now time.Time) (time.Time, time.Time) {
	end := now.UTC()
	return end.Add(-w.Duration()), end
}

// DayKey formats t as its UTC calendar day, e.g. "2025-12-28".
func DayKey(t time.Time) string {
	return t.UTC().Format(dayKeyLayout)
}

// DaysBetween returns the UTC midnights of every calendar day touched by [start, end].
func DaysBetween(start, end time.Time) []time.Time {
	start = start.UTC().Truncate(24 * time.Hour)
	end = end.UTC()
	var days []time.Time
	for day := start; !day.After(end); day = day.Add(24 * time.Hour) {
		days = append(days, day)
	}
	return days
}
