// Package schedule defines the recurring sleep schedule, one-day overrides
// and the rules that resolve them into the schedule in effect for a date.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/bedtime/pkg/timeutil"
)

const (
	DefaultBedtime      = "22:30"
	DefaultWakeTime     = "07:00"
	DefaultLatency      = 15
	DefaultGraceMinutes = 15
)

// Schedule is the recurring nightly plan.
type Schedule struct {
	Bedtime             string `json:"bedtime"`
	WakeTime            string `json:"wakeTime"`
	SleepLatencyMinutes int    `json:"sleepLatency"`
	GraceMinutes        int    `json:"graceMinutes"`
}

// Default returns the schedule used when nothing has been saved.
func Default() Schedule {
	return Schedule{
		Bedtime:             DefaultBedtime,
		WakeTime:            DefaultWakeTime,
		SleepLatencyMinutes: DefaultLatency,
		GraceMinutes:        DefaultGraceMinutes,
	}
}

// Validate checks both clock times parse and the minute counts are not negative.
// Bedtime and wake time may fall in any order.
func (s Schedule) Validate() error {
	if _, err := timeutil.ToMinutes(s.Bedtime); err != nil {
		return fmt.Errorf("schedule: bedtime: %w", err)
	}
	if _, err := timeutil.ToMinutes(s.WakeTime); err != nil {
		return fmt.Errorf("schedule: wake time: %w", err)
	}
	if s.SleepLatencyMinutes < 0 {
		return errors.New("schedule: sleep latency must not be negative")
	}
	if s.GraceMinutes < 0 {
		return errors.New("schedule: grace minutes must not be negative")
	}
	return nil
}

// Patch is a partial update; nil fields leave the target untouched.
type Patch struct {
	Bedtime             *string `json:"bedtime,omitempty"`
	WakeTime            *string `json:"wakeTime,omitempty"`
	SleepLatencyMinutes *int    `json:"sleepLatency,omitempty"`
	GraceMinutes        *int    `json:"graceMinutes,omitempty"`
}

// Empty reports whether the patch sets nothing.
func (p Patch) Empty() bool {
	return p.Bedtime == nil && p.WakeTime == nil && p.SleepLatencyMinutes == nil && p.GraceMinutes == nil
}

// Apply returns s with every set field of p replaced.
func (p Patch) Apply(s Schedule) Schedule {
	if p.Bedtime != nil {
		s.Bedtime = *p.Bedtime
	}
	if p.WakeTime != nil {
		s.WakeTime = *p.WakeTime
	}
	if p.SleepLatencyMinutes != nil {
		s.SleepLatencyMinutes = *p.SleepLatencyMinutes
	}
	if p.GraceMinutes != nil {
		s.GraceMinutes = *p.GraceMinutes
	}
	return s
}

// Merge layers q over p; fields set in q win.
func (p Patch) Merge(q Patch) Patch {
	if q.Bedtime != nil {
		p.Bedtime = q.Bedtime
	}
	if q.WakeTime != nil {
		p.WakeTime = q.WakeTime
	}
	if q.SleepLatencyMinutes != nil {
		p.SleepLatencyMinutes = q.SleepLatencyMinutes
	}
	if q.GraceMinutes != nil {
		p.GraceMinutes = q.GraceMinutes
	}
	return p
}

// Scope says where a schedule change applies.
type Scope string

const (
	// ScopeEveryday updates the recurring schedule and drops any override.
	ScopeEveryday Scope = "everyday"
	// ScopeTomorrow stores a one-day override dated tomorrow.
	ScopeTomorrow Scope = "tomorrow"
)

// ParseScope converts a string to a Scope, defaulting to ScopeEveryday.
func ParseScope(raw string) (Scope, error) {
	s := Scope(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case "":
		return ScopeEveryday, nil
	case ScopeEveryday, ScopeTomorrow:
		return s, nil
	default:
		return "", fmt.Errorf("schedule: unknown scope %q, want everyday or tomorrow", raw)
	}
}

// Override is a Patch bound to one calendar date.
type Override struct {
	Date string `json:"date"`
	Patch
}

// NewOverride dates p for the day after now.
func NewOverride(p Patch, now time.Time) *Override {
	return &Override{Date: timeutil.DateKey(now.AddDate(0, 0, 1)), Patch: p}
}

// ActiveOn reports whether the override applies on the date of now.
func (o *Override) ActiveOn(now time.Time) bool {
	return o != nil && o.Date == timeutil.DateKey(now)
}

// ExpiredOn reports whether the override's date is before the date of now.
func (o *Override) ExpiredOn(now time.Time) bool {
	return o != nil && o.Date < timeutil.DateKey(now)
}

// Effective resolves the schedule in effect on the date of now. The second
// result is true when the override has expired and should be discarded.
func Effective(def Schedule, o *Override, now time.Time) (Schedule, bool) {
	switch {
	case o.ActiveOn(now):
		return o.Apply(def), false
	case o.ExpiredOn(now):
		return def, true
	default:
		return def, false
	}
}
