package session

import (
	"time"

	"tableflip.dev/bedtime/pkg/timeutil"
)

// Day is one bar of the weekly chart.
type Day struct {
	Label   string  `json:"label"`
	Date    string  `json:"date"`
	Hours   float64 `json:"hours"`
	SleepAt string  `json:"sleepTime,omitempty"`
	WakeAt  string  `json:"wakeTime,omitempty"`
}

// Logged reports whether the day has a recorded night.
func (d Day) Logged() bool {
	return d.Hours > 0
}

// Week lays out the seven days ending today, oldest first. When a day has
// several entries the latest one is used.
func Week(entries []LogEntry, today time.Time) []Day {
	byDate := make(map[string]LogEntry, len(entries))
	for _, e := range entries {
		byDate[e.Date] = e
	}
	days := make([]Day, 0, 7)
	for i := 6; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		d := Day{
			Label: date.Weekday().String()[:3],
			Date:  timeutil.DateKey(date),
		}
		if e, ok := byDate[d.Date]; ok && e.WakeAt.After(e.SleepAt) {
			d.Hours = e.Duration().Hours()
			d.SleepAt = timeutil.ToClockString(timeutil.MinutesOf(e.SleepAt.In(today.Location())))
			d.WakeAt = timeutil.ToClockString(timeutil.MinutesOf(e.WakeAt.In(today.Location())))
		}
		days = append(days, d)
	}
	return days
}

// AverageHours is the mean over logged days, 0 when none are logged.
func AverageHours(days []Day) float64 {
	total, n := 0.0, 0
	for _, d := range days {
		if d.Logged() {
			total += d.Hours
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
