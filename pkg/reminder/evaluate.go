// Package reminder decides when a bedtime reminder is due and keeps the
// reminder alarms, badge and skip state in step with the schedule.
package reminder

import (
	"errors"
	"fmt"
	"time"

	"tableflip.dev/bedtime/pkg/schedule"
	"tableflip.dev/bedtime/pkg/timeutil"
)

// SkipDuration is how long a "skip" silences the reminder.
const SkipDuration = 15 * time.Minute

// State is the persisted reminder state. LastSkippedAt and SkipUntil are set
// and cleared together.
type State struct {
	Enabled       bool       `json:"enabled"`
	LastSkippedAt *time.Time `json:"lastSkipped"`
	SkipUntil     *time.Time `json:"skipUntil"`
}

// Skipped reports whether a skip is recorded.
func (s State) Skipped() bool {
	return s.LastSkippedAt != nil
}

// Skip records a skip at now.
func (s *State) Skip(now time.Time) {
	until := now.Add(SkipDuration)
	s.LastSkippedAt = &now
	s.SkipUntil = &until
}

// ErrRemindersOff is returned for a skip while reminders are disabled.
var ErrRemindersOff = errors.New("reminder: reminders are off")

// Snooze records a skip at now when reminders are enabled.
func (s *State) Snooze(now time.Time) error {
	if !s.Enabled {
		return ErrRemindersOff
	}
	s.Skip(now)
	return nil
}

// ClearSkip forgets any recorded skip.
func (s *State) ClearSkip() {
	s.LastSkippedAt = nil
	s.SkipUntil = nil
}

// Status is the outcome of an evaluation.
type Status struct {
	IsDue       bool   `json:"isDue"`
	MinutesPast int    `json:"minutesPast"`
	BadgeText   string `json:"badgeText"`
}

// Evaluate reports whether the bedtime reminder is due at nowMinutes and how
// many minutes have passed since bedtime plus grace. The due window runs from
// the reminder minute until the wake time, crossing midnight when bedtime is
// not before the wake time.
func Evaluate(s schedule.Schedule, nowMinutes int, sleeping bool, st State) (Status, error) {
	if sleeping || !st.Enabled {
		return Status{}, nil
	}
	bed, err := timeutil.ToMinutes(s.Bedtime)
	if err != nil {
		return Status{}, fmt.Errorf("reminder: bedtime: %w", err)
	}
	wake, err := timeutil.ToMinutes(s.WakeTime)
	if err != nil {
		return Status{}, fmt.Errorf("reminder: wake time: %w", err)
	}
	remind := bed + s.GraceMinutes

	var within bool
	var past int
	if bed < wake {
		within = nowMinutes >= remind && nowMinutes < wake
		past = nowMinutes - remind
	} else {
		within = nowMinutes >= remind || nowMinutes < wake
		if nowMinutes >= remind {
			past = nowMinutes - remind
		} else {
			past = (timeutil.MinutesPerDay - remind) + nowMinutes
		}
	}

	out := Status{IsDue: within && past >= 0, MinutesPast: past}
	if out.IsDue {
		out.BadgeText = BadgeText(past)
	}
	return out, nil
}

// EvaluateAt is Evaluate with the minute taken from now.
func EvaluateAt(s schedule.Schedule, now time.Time, sleeping bool, st State) (Status, error) {
	return Evaluate(s, timeutil.MinutesOf(now), sleeping, st)
}

// BadgeText renders minutes past bedtime for the badge, "" when not positive.
func BadgeText(minutesPast int) string {
	if minutesPast <= 0 {
		return ""
	}
	return fmt.Sprintf("%dm", minutesPast)
}

// NextFire returns the first instant after now at which bedtime plus grace
// falls. A grace period that pushes the reminder past midnight belongs to the
// previous evening's bedtime, so yesterday's occurrence is considered first.
func NextFire(s schedule.Schedule, now time.Time) (time.Time, error) {
	bed, err := timeutil.ToMinutes(s.Bedtime)
	if err != nil {
		return time.Time{}, fmt.Errorf("reminder: bedtime: %w", err)
	}
	offset := bed + s.GraceMinutes
	for _, day := range []time.Time{now.AddDate(0, 0, -1), now, now.AddDate(0, 0, 1)} {
		if at := timeutil.At(day, offset); at.After(now) {
			return at, nil
		}
	}
	return timeutil.At(now.AddDate(0, 0, 2), offset), nil
}
