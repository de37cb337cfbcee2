// Package planner suggests bed and wake times spaced by whole sleep cycles.
package planner

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/bedtime/pkg/timeutil"
)

const (
	// CycleMinutes is the heuristic length of one sleep cycle.
	CycleMinutes = 90
	// MinCycles is the fewest cycles ever suggested.
	MinCycles = 4
	// MaxCycles is the most cycles ever suggested.
	MaxCycles = 6
	// DefaultLatency is the assumed time to fall asleep, in minutes.
	DefaultLatency = 15
)

// ErrNegativeLatency is returned when a sleep-onset latency below zero is given.
var ErrNegativeLatency = errors.New("planner: latency must not be negative")

// Mode selects which end of the night the target time describes.
type Mode string

const (
	// ModeWake means "I want to wake up at"; bedtimes are suggested.
	ModeWake Mode = "wake"
	// ModeSleep means "I am going to sleep at"; wake times are suggested.
	ModeSleep Mode = "sleep"
)

// ParseMode converts a string to a Mode.
func ParseMode(raw string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(raw)))
	switch m {
	case ModeWake, ModeSleep:
		return m, nil
	case "":
		return ModeWake, nil
	default:
		return "", fmt.Errorf("planner: unknown mode %q", raw)
	}
}

// Suggestion is one candidate bed or wake time.
type Suggestion struct {
	Time            string `json:"time"`
	Cycles          int    `json:"cycles"`
	DurationMinutes int    `json:"durationMinutes"`
	Duration        string `json:"duration"`
}

// Suggest dispatches on mode.
func Suggest(mode Mode, at string, latency int) ([]Suggestion, error) {
	switch mode {
	case ModeSleep:
		return SuggestWakeTimes(at, latency)
	default:
		return SuggestSleepTimes(at, latency)
	}
}

// SuggestSleepTimes lists bedtimes that end a whole number of cycles at
// wakeTime, most cycles (earliest bedtime) first.
func SuggestSleepTimes(wakeTime string, latency int) ([]Suggestion, error) {
	if latency < 0 {
		return nil, ErrNegativeLatency
	}
	wake, err := timeutil.ToMinutes(wakeTime)
	if err != nil {
		return nil, fmt.Errorf("planner: wake time: %w", err)
	}
	out := make([]Suggestion, 0, MaxCycles-MinCycles+1)
	for cycles := MaxCycles; cycles >= MinCycles; cycles-- {
		out = append(out, suggestion(wake-cycles*CycleMinutes-latency, cycles))
	}
	return out, nil
}

// SuggestWakeTimes lists wake times a whole number of cycles after falling
// asleep at sleepTime, earliest first.
func SuggestWakeTimes(sleepTime string, latency int) ([]Suggestion, error) {
	if latency < 0 {
		return nil, ErrNegativeLatency
	}
	sleep, err := timeutil.ToMinutes(sleepTime)
	if err != nil {
		return nil, fmt.Errorf("planner: sleep time: %w", err)
	}
	out := make([]Suggestion, 0, MaxCycles-MinCycles+1)
	for cycles := MinCycles; cycles <= MaxCycles; cycles++ {
		out = append(out, suggestion(sleep+latency+cycles*CycleMinutes, cycles))
	}
	return out, nil
}

func suggestion(minutes, cycles int) Suggestion {
	d := cycles * CycleMinutes
	return Suggestion{
		Time:            timeutil.ToClockString(minutes),
		Cycles:          cycles,
		DurationMinutes: d,
		Duration:        timeutil.FormatDuration(d),
	}
}
