// Package session records sleep sessions and keeps the rolling sleep log.
package session

import (
	"fmt"
	"strings"
	"time"
)

// Mood is how the user felt on waking.
type Mood string

const (
	MoodRefreshed Mood = "refreshed"
	MoodOkay      Mood = "okay"
	MoodTired     Mood = "tired"
)

// AllMoods returns the supported moods in display order.
func AllMoods() []Mood {
	return []Mood{MoodRefreshed, MoodOkay, MoodTired}
}

// ParseMood converts a string to a Mood. An empty string yields nil.
func ParseMood(raw string) (*Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(raw)))
	if m == "" {
		return nil, nil
	}
	for _, known := range AllMoods() {
		if m == known {
			return &m, nil
		}
	}
	return nil, fmt.Errorf("session: unknown mood %q, want one of refreshed, okay, tired", raw)
}

// Session is an in-progress (or just closed) night of sleep.
type Session struct {
	SleepAt time.Time  `json:"sleepTime"`
	WakeAt  *time.Time `json:"wakeTime"`
	Mood    *Mood      `json:"mood"`
}

// Open reports whether the session has not been closed.
func (s *Session) Open() bool {
	return s != nil && !s.SleepAt.IsZero() && s.WakeAt == nil
}

// LogEntry is a closed session. Entries are never modified after creation.
type LogEntry struct {
	ID      string    `json:"id"`
	Date    string    `json:"date"`
	SleepAt time.Time `json:"sleepTime"`
	WakeAt  time.Time `json:"wakeTime"`
	Mood    *Mood     `json:"mood"`
}

// Duration is the time between falling asleep and waking.
func (e LogEntry) Duration() time.Duration {
	return e.WakeAt.Sub(e.SleepAt)
}

// Journal is everything the log persists: the open session, if any, and the
// retained entries oldest first.
type Journal struct {
	Current *Session   `json:"current"`
	Entries []LogEntry `json:"entries"`
}
