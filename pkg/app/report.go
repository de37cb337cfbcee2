package app

import (
	"context"
	"time"

	"tableflip.dev/bedtime/pkg/session"
	"tableflip.dev/bedtime/pkg/summary"
	"tableflip.dev/bedtime/pkg/timeutil"
)

// ReportResult covers the logged nights in a window plus the weekly chart.
type ReportResult struct {
	Since        time.Time         `json:"since"`
	Until        time.Time         `json:"until"`
	Nights       []summary.Summary `json:"nights"`
	Week         []session.Day     `json:"week"`
	AverageHours float64           `json:"averageHours"`
	Total        int               `json:"total"`
}

// Report summarizes the nights dated within the last window days, today
// included. The window is at most the log's retention.
func (s *Service) Report(ctx context.Context, window timeutil.Window) (ReportResult, error) {
	st, err := s.store()
	if err != nil {
		return ReportResult{}, err
	}
	now := s.now()
	until := timeutil.StartOfDay(now)
	since := until.AddDate(0, 0, -(window.Days() - 1))

	j, err := st.Journal(ctx)
	if err != nil {
		return ReportResult{}, err
	}
	sched, err := st.EffectiveSchedule(ctx, now)
	if err != nil {
		return ReportResult{}, err
	}

	entries := session.InRange(j.Entries, since, until)
	nights := make([]summary.Summary, 0, len(entries))
	for i := range entries {
		if sum := summary.Summarize(&entries[i], sched.SleepLatencyMinutes, now.Location()); sum != nil {
			nights = append(nights, *sum)
		}
	}
	week := session.Week(j.Entries, now)
	return ReportResult{
		Since:        since,
		Until:        until,
		Nights:       nights,
		Week:         week,
		AverageHours: session.AverageHours(week),
		Total:        len(nights),
	}, nil
}
