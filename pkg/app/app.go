package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/bedtime/pkg/planner"
	"tableflip.dev/bedtime/pkg/reminder"
	"tableflip.dev/bedtime/pkg/schedule"
	"tableflip.dev/bedtime/pkg/session"
	"tableflip.dev/bedtime/pkg/store"
	"tableflip.dev/bedtime/pkg/summary"
	"tableflip.dev/bedtime/pkg/timeutil"
	"tableflip.dev/bedtime/pkg/tips"
)

// Service provides high-level operations over the schedule, reminders and
// the sleep log. It wraps the store so UIs and CLIs can share logic.
type Service struct {
	Store *store.Store
	Now   func() time.Time
	// IntN picks tips; nil uses math/rand.
	IntN func(n int) int
}

var errNoStore = errors.New("app: no persistence configured")

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) store() (*store.Store, error) {
	if s.Store == nil {
		return nil, errNoStore
	}
	return s.Store, nil
}

// Sessions returns the session log over the store.
func (s *Service) Sessions() *session.Log {
	return &session.Log{Repository: s.Store, Now: s.Now}
}

// Tips returns the tip picker over the store.
func (s *Service) Tips() *tips.Picker {
	return &tips.Picker{Repository: s.Store, Now: s.Now, IntN: s.IntN}
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	st, err := s.store()
	if err != nil {
		return nil, err
	}
	return st.Watch(ctx)
}

// Plan suggests sleep or wake times for target. A nil latency uses the
// effective schedule's latency.
func (s *Service) Plan(ctx context.Context, mode planner.Mode, target string, latency *int) ([]planner.Suggestion, error) {
	l := planner.DefaultLatency
	if latency != nil {
		l = *latency
	} else if st, err := s.store(); err == nil {
		sched, err := st.EffectiveSchedule(ctx, s.now())
		if err != nil {
			return nil, err
		}
		l = sched.SleepLatencyMinutes
	}
	return planner.Suggest(mode, target, l)
}

// PlanGraceMinutes is the grace period saved with a chosen suggestion.
const PlanGraceMinutes = 15

// UsePlan saves a chosen suggestion as the everyday schedule and turns
// reminders on. In wake mode the suggestion becomes the bedtime and target
// the wake time; in sleep mode it is the other way round.
func (s *Service) UsePlan(ctx context.Context, mode planner.Mode, target string, pick planner.Suggestion) (schedule.Schedule, error) {
	mins, err := timeutil.ToMinutes(target)
	if err != nil {
		return schedule.Schedule{}, err
	}
	target = timeutil.ToClockString(mins)
	bed, wake := pick.Time, target
	if mode == planner.ModeSleep {
		bed, wake = target, pick.Time
	}
	grace := PlanGraceMinutes
	sched, err := s.UpdateSchedule(ctx, schedule.Patch{
		Bedtime:      &bed,
		WakeTime:     &wake,
		GraceMinutes: &grace,
	}, schedule.ScopeEveryday)
	if err != nil {
		return schedule.Schedule{}, err
	}
	if _, err := s.SetReminders(ctx, true); err != nil {
		return schedule.Schedule{}, err
	}
	return sched, nil
}

// ScheduleView is everything `schedule show` prints.
type ScheduleView struct {
	Default      schedule.Schedule  `json:"default"`
	Override     *schedule.Override `json:"override,omitempty"`
	Effective    schedule.Schedule  `json:"effective"`
	Reminders    bool               `json:"reminders"`
	NextReminder *time.Time         `json:"nextReminder,omitempty"`
}

// Schedule describes the saved and effective schedules.
func (s *Service) Schedule(ctx context.Context) (ScheduleView, error) {
	st, err := s.store()
	if err != nil {
		return ScheduleView{}, err
	}
	now := s.now()
	eff, err := st.EffectiveSchedule(ctx, now)
	if err != nil {
		return ScheduleView{}, err
	}
	def, err := st.DefaultSchedule(ctx)
	if err != nil {
		return ScheduleView{}, err
	}
	o, err := st.Override(ctx)
	if err != nil {
		return ScheduleView{}, err
	}
	rs, err := st.ReminderState(ctx)
	if err != nil {
		return ScheduleView{}, err
	}
	v := ScheduleView{Default: def, Override: o, Effective: eff, Reminders: rs.Enabled}
	if rs.Enabled {
		next, err := reminder.NextFire(eff, now)
		if err != nil {
			return ScheduleView{}, err
		}
		v.NextReminder = &next
	}
	return v, nil
}

// UpdateSchedule applies p for scope and returns the schedule it produced.
func (s *Service) UpdateSchedule(ctx context.Context, p schedule.Patch, scope schedule.Scope) (schedule.Schedule, error) {
	st, err := s.store()
	if err != nil {
		return schedule.Schedule{}, err
	}
	if p.Empty() {
		return schedule.Schedule{}, errors.New("app: nothing to update")
	}
	return st.UpdateSchedule(ctx, p, scope, s.now())
}

// SetReminders turns reminders on or off. Turning them off forgets any skip.
func (s *Service) SetReminders(ctx context.Context, enabled bool) (reminder.State, error) {
	st, err := s.store()
	if err != nil {
		return reminder.State{}, err
	}
	return st.UpdateReminderState(ctx, func(rs *reminder.State) error {
		rs.Enabled = enabled
		if !enabled {
			rs.ClearSkip()
		}
		return nil
	})
}

// Skip silences tonight's reminder for reminder.SkipDuration.
func (s *Service) Skip(ctx context.Context) (reminder.State, error) {
	st, err := s.store()
	if err != nil {
		return reminder.State{}, err
	}
	now := s.now()
	return st.UpdateReminderState(ctx, func(rs *reminder.State) error {
		return rs.Snooze(now)
	})
}

// Sleep opens a sleep session and forgets any skip.
func (s *Service) Sleep(ctx context.Context) (time.Time, error) {
	st, err := s.store()
	if err != nil {
		return time.Time{}, err
	}
	at, err := s.Sessions().Start(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if _, err := st.UpdateReminderState(ctx, func(rs *reminder.State) error {
		rs.ClearSkip()
		return nil
	}); err != nil {
		return time.Time{}, err
	}
	return at, nil
}

// Wake closes the open session and summarizes it. It returns nil when no
// session was open.
func (s *Service) Wake(ctx context.Context, mood *session.Mood) (*summary.Summary, error) {
	st, err := s.store()
	if err != nil {
		return nil, err
	}
	e, err := s.Sessions().End(ctx, mood)
	if err != nil || e == nil {
		return nil, err
	}
	sched, err := st.EffectiveSchedule(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return summary.Summarize(e, sched.SleepLatencyMinutes, s.now().Location()), nil
}

// Cancel discards the open session without logging it.
func (s *Service) Cancel(ctx context.Context) (bool, error) {
	if _, err := s.store(); err != nil {
		return false, err
	}
	return s.Sessions().Cancel(ctx)
}

// Tip returns today's tip, if one has not been shown yet.
func (s *Service) Tip(ctx context.Context) (string, bool, error) {
	if _, err := s.store(); err != nil {
		return "", false, err
	}
	return s.Tips().Today(ctx)
}

// Reset erases every stored value.
func (s *Service) Reset(ctx context.Context) error {
	st, err := s.store()
	if err != nil {
		return err
	}
	if err := st.ClearAll(ctx); err != nil {
		return fmt.Errorf("app: reset: %w", err)
	}
	return nil
}
