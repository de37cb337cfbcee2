package reminder

import (
	"context"
	"time"

	"tableflip.dev/bedtime/pkg/schedule"
)

// Alarm names.
const (
	AlarmBedtime = "bedtimeReminder"
	AlarmSkip    = "skipReminder"
	AlarmBadge   = "updateBadge"
)

// Notification actions, by index.
const (
	ActionGoingToSleep = iota
	ActionSkip
)

// Badge appearance.
const (
	BadgeColor   = "#5eead4"
	DefaultTitle = "bedtime"
)

// Notification is what the Notifier is asked to show.
type Notification struct {
	Title   string
	Message string
	Actions []string
}

// Notifier delivers a notification. Chosen actions come back through
// Scheduler.HandleAction.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Badge is the small always-visible status indicator.
type Badge interface {
	SetText(text string) error
	SetColor(color string) error
	SetTitle(title string) error
}

// Alarms arms named one-shot triggers. Scheduling a name replaces any
// pending trigger with that name.
type Alarms interface {
	Schedule(name string, when time.Time)
	Cancel(name string)
}

// Activity reports whether the user is currently at the machine.
type Activity interface {
	Active(ctx context.Context) bool
}

// Store is the persisted state the scheduler reads and writes. Each call
// re-reads storage; UpdateReminderState is an exclusive read-modify-write.
type Store interface {
	EffectiveSchedule(ctx context.Context, now time.Time) (schedule.Schedule, error)
	ReminderState(ctx context.Context) (State, error)
	UpdateReminderState(ctx context.Context, fn func(*State) error) (State, error)
}

// Sessions is the slice of the session log the scheduler needs.
type Sessions interface {
	IsSleeping(ctx context.Context) (bool, error)
	Start(ctx context.Context) (time.Time, error)
}

// Observer receives scheduler events, for metrics.
type Observer interface {
	Observe(event string)
}

// Scheduler events passed to Observer.
const (
	EventArmed       = "armed"
	EventCleared     = "cleared"
	EventFired       = "fired"
	EventNotified    = "notified"
	EventSuppressed  = "suppressed"
	EventSkipped     = "skipped"
	EventSlept       = "slept"
	EventStaleSkip   = "stale_skip_cleared"
	EventBadgeUpdate = "badge_updated"
)

type nopObserver struct{}

func (nopObserver) Observe(string) {}
