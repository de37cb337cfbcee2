// Package summary describes a logged night: how long it was, how many cycles
// it covered and the one insight worth mentioning.
package summary

import (
	"fmt"
	"time"

	"tableflip.dev/bedtime/pkg/planner"
	"tableflip.dev/bedtime/pkg/session"
	"tableflip.dev/bedtime/pkg/timeutil"
)

// Summary is the display-ready description of one log entry.
type Summary struct {
	Date            string          `json:"date"`
	SleepAt         string          `json:"sleepTime"`
	WakeAt          string          `json:"wakeTime"`
	Duration        string          `json:"duration"`
	DurationMinutes int             `json:"durationMinutes"`
	Cycles          string          `json:"cycles"`
	CompleteCycles  int             `json:"completeCycles"`
	Insight         planner.Insight `json:"insight,omitempty"`
	Mood            *session.Mood   `json:"mood,omitempty"`
}

// SelectInsight picks exactly one insight; the first matching rule wins.
func SelectInsight(cycles float64, mood *session.Mood) planner.Insight {
	complete, frac := planner.Split(cycles)
	switch {
	case planner.CycleInsight(cycles) == planner.InsightMidCycle:
		return planner.InsightMidCycle
	case complete < 4:
		return planner.InsightShort
	case complete > 7:
		return planner.InsightLong
	case mood != nil && *mood == session.MoodTired && complete >= 5 && frac < 0.3:
		return planner.InsightTired
	case frac < 0.2 || frac > 0.8:
		return planner.InsightGoodTiming
	default:
		return planner.InsightNone
	}
}

// Summarize describes e in loc, or returns nil for a nil entry.
func Summarize(e *session.LogEntry, latency int, loc *time.Location) *Summary {
	if e == nil || e.SleepAt.IsZero() || e.WakeAt.IsZero() {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}
	minutes := int(e.Duration() / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	cycles := planner.CyclesBetween(e.SleepAt, e.WakeAt, latency)
	complete, _ := planner.Split(cycles)
	return &Summary{
		Date:            e.Date,
		SleepAt:         timeutil.ToClockString(timeutil.MinutesOf(e.SleepAt.In(loc))),
		WakeAt:          timeutil.ToClockString(timeutil.MinutesOf(e.WakeAt.In(loc))),
		Duration:        fmt.Sprintf("%dh %dm", minutes/60, minutes%60),
		DurationMinutes: minutes,
		Cycles:          fmt.Sprintf("%.1f", cycles),
		CompleteCycles:  complete,
		Insight:         SelectInsight(cycles, e.Mood),
		Mood:            e.Mood,
	}
}
