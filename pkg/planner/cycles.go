package planner

import (
	"math"
	"time"
)

// Insight names one observation about a night of sleep.
type Insight string

const (
	InsightNone       Insight = ""
	InsightMidCycle   Insight = "mid-cycle"
	InsightShort      Insight = "short"
	InsightLong       Insight = "long"
	InsightTired      Insight = "tired-despite-timing"
	InsightGoodTiming Insight = "good-timing"
)

var insightMessages = map[Insight]string{
	InsightMidCycle:   "You woke up mid-cycle. This can feel groggy.",
	InsightShort:      "Shorter sleep may affect how you feel during the day.",
	InsightLong:       "Longer sleep isn't always better. Quality matters too.",
	InsightTired:      "Good timing, but tiredness can have other causes.",
	InsightGoodTiming: "You woke up near the end of a cycle. This usually feels better.",
}

// Message is the English sentence for the insight, "" for InsightNone.
func (i Insight) Message() string {
	return insightMessages[i]
}

// CyclesBetween is the number of cycles slept between sleepAt and wakeAt once
// latency is subtracted. It is never negative.
func CyclesBetween(sleepAt, wakeAt time.Time, latency int) float64 {
	minutes := wakeAt.Sub(sleepAt).Minutes() - float64(latency)
	if minutes <= 0 {
		return 0
	}
	return minutes / CycleMinutes
}

// Split returns the whole cycles and the fractional remainder.
func Split(cycles float64) (int, float64) {
	whole := math.Floor(cycles)
	return int(whole), cycles - whole
}

// CycleInsight flags a wake-up in the middle of a cycle.
func CycleInsight(cycles float64) Insight {
	_, frac := Split(cycles)
	if frac > 0.3 && frac < 0.7 {
		return InsightMidCycle
	}
	return InsightNone
}
