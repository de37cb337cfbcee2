package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/bedtime/pkg/timeutil"
)

// Phase is the scheduler's position in the reminder cycle.
type Phase int

const (
	// PhaseIdle means no reminder is armed.
	PhaseIdle Phase = iota
	// PhaseArmed means the daily reminder alarm is set.
	PhaseArmed
	// PhaseSnoozed means a skip re-check is pending alongside the daily alarm.
	PhaseSnoozed
)

func (p Phase) String() string {
	switch p {
	case PhaseArmed:
		return "armed"
	case PhaseSnoozed:
		return "snoozed"
	default:
		return "idle"
	}
}

// Scheduler drives the bedtime reminder: it arms the daily alarm, reacts to
// alarm firings and notification actions, and keeps the badge current.
// Handlers re-read persisted state on every call.
type Scheduler struct {
	Store    Store
	Sessions Sessions
	Alarms   Alarms
	Notifier Notifier
	Badge    Badge
	Activity Activity
	Observer Observer
	Logger   *zap.Logger
	Now      func() time.Time

	mu     sync.Mutex
	phase  Phase
	target time.Time
}

// Phase returns the current phase and, when armed, the daily target.
func (s *Scheduler) Phase() (Phase, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase, s.target
}

func (s *Scheduler) setPhase(p Phase, target time.Time) {
	s.mu.Lock()
	s.phase = p
	s.target = target
	s.mu.Unlock()
}

func (s *Scheduler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Scheduler) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *Scheduler) observe(event string) {
	if s.Observer == nil {
		nopObserver{}.Observe(event)
		return
	}
	s.Observer.Observe(event)
}

func (s *Scheduler) validate() error {
	switch {
	case s.Store == nil:
		return errors.New("reminder: no store configured")
	case s.Sessions == nil:
		return errors.New("reminder: no session log configured")
	case s.Alarms == nil:
		return errors.New("reminder: no alarms configured")
	}
	return nil
}

// Reschedule recomputes the daily alarm from the effective schedule,
// replacing any pending one. A disabled reminder, or a user already asleep,
// leaves the scheduler idle.
func (s *Scheduler) Reschedule(ctx context.Context) error {
	return s.rescheduleFrom(ctx, s.now())
}

func (s *Scheduler) rescheduleFrom(ctx context.Context, ref time.Time) error {
	if err := s.validate(); err != nil {
		return err
	}
	now := s.now()
	st, err := s.Store.ReminderState(ctx)
	if err != nil {
		return fmt.Errorf("reminder: read state: %w", err)
	}
	sleeping, err := s.Sessions.IsSleeping(ctx)
	if err != nil {
		return fmt.Errorf("reminder: read session: %w", err)
	}
	if !st.Enabled || sleeping {
		s.Alarms.Cancel(AlarmBedtime)
		s.Alarms.Cancel(AlarmSkip)
		s.setPhase(PhaseIdle, time.Time{})
		s.observe(EventCleared)
		s.log().Debug("reminder idle", zap.Bool("enabled", st.Enabled), zap.Bool("sleeping", sleeping))
		return s.clearBadge()
	}
	sched, err := s.Store.EffectiveSchedule(ctx, now)
	if err != nil {
		return fmt.Errorf("reminder: read schedule: %w", err)
	}
	if ref.Before(now) {
		ref = now
	}
	at, err := NextFire(sched, ref)
	if err != nil {
		return err
	}
	s.Alarms.Schedule(AlarmBedtime, at)
	phase := PhaseArmed
	if st.SkipUntil != nil && st.SkipUntil.After(now) {
		phase = PhaseSnoozed
	}
	s.setPhase(phase, at)
	s.observe(EventArmed)
	s.log().Info("bedtime reminder scheduled", zap.Time("at", at), zap.String("bedtime", sched.Bedtime), zap.Int("grace", sched.GraceMinutes))
	return nil
}

// Resync brings the alarms in line with persisted state after it changed
// outside the scheduler: the daily alarm is recomputed and a skip recorded
// elsewhere gets its re-check alarm.
func (s *Scheduler) Resync(ctx context.Context) error {
	if err := s.Reschedule(ctx); err != nil {
		return err
	}
	if p, _ := s.Phase(); p == PhaseIdle {
		return nil
	}
	st, err := s.Store.ReminderState(ctx)
	if err != nil {
		return fmt.Errorf("reminder: read state: %w", err)
	}
	if st.SkipUntil != nil && st.SkipUntil.After(s.now()) {
		s.Alarms.Schedule(AlarmSkip, *st.SkipUntil)
		return nil
	}
	s.Alarms.Cancel(AlarmSkip)
	return nil
}

// Disable cancels every reminder alarm and clears the badge.
func (s *Scheduler) Disable() error {
	if s.Alarms != nil {
		s.Alarms.Cancel(AlarmBedtime)
		s.Alarms.Cancel(AlarmSkip)
	}
	s.setPhase(PhaseIdle, time.Time{})
	s.observe(EventCleared)
	return s.clearBadge()
}

// HandleAlarm reacts to a named alarm firing.
func (s *Scheduler) HandleAlarm(ctx context.Context, name string) error {
	if err := s.validate(); err != nil {
		return err
	}
	s.log().Debug("alarm fired", zap.String("name", name))
	switch name {
	case AlarmBedtime:
		s.observe(EventFired)
		_, target := s.Phase()
		notifyErr := s.notifyIfAwake(ctx)
		// The next fire is computed from the later of now and the target that
		// just fired so an early timer cannot re-arm the same evening.
		ref := s.now()
		if target.After(ref) {
			ref = target
		}
		if err := s.rescheduleFrom(ctx, ref.Add(time.Second)); err != nil {
			return err
		}
		return notifyErr
	case AlarmSkip:
		notifyErr := s.notifyIfAwake(ctx)
		if err := s.RefreshBadge(ctx); err != nil {
			return err
		}
		s.mu.Lock()
		if s.phase == PhaseSnoozed {
			s.phase = PhaseArmed
		}
		s.mu.Unlock()
		return notifyErr
	case AlarmBadge:
		st, err := s.Store.ReminderState(ctx)
		if err != nil {
			return fmt.Errorf("reminder: read state: %w", err)
		}
		if st.Skipped() {
			if err := s.RefreshBadge(ctx); err != nil {
				return err
			}
		}
		return s.ClearStaleSkip(ctx)
	default:
		return fmt.Errorf("reminder: unknown alarm %q", name)
	}
}

func (s *Scheduler) notifyIfAwake(ctx context.Context) error {
	if s.Activity != nil && !s.Activity.Active(ctx) {
		s.observe(EventSuppressed)
		s.log().Debug("reminder suppressed, user inactive")
		return nil
	}
	sleeping, err := s.Sessions.IsSleeping(ctx)
	if err != nil {
		return fmt.Errorf("reminder: read session: %w", err)
	}
	if sleeping {
		s.observe(EventSuppressed)
		s.log().Debug("reminder suppressed, user sleeping")
		return nil
	}
	if s.Notifier == nil {
		return nil
	}
	sched, err := s.Store.EffectiveSchedule(ctx, s.now())
	if err != nil {
		return fmt.Errorf("reminder: read schedule: %w", err)
	}
	n := Notification{
		Title:   "Time for bed",
		Message: fmt.Sprintf("It's past your bedtime (%s). Ready to sleep?", sched.Bedtime),
		Actions: []string{"Going to sleep", "Skip 15 min"},
	}
	if err := s.Notifier.Notify(ctx, n); err != nil {
		return fmt.Errorf("reminder: notify: %w", err)
	}
	s.observe(EventNotified)
	return nil
}

// HandleAction maps a notification button to its transition.
func (s *Scheduler) HandleAction(ctx context.Context, index int) error {
	switch index {
	case ActionGoingToSleep:
		return s.GoingToSleep(ctx)
	case ActionSkip:
		return s.Skip(ctx)
	default:
		return fmt.Errorf("reminder: unknown action %d", index)
	}
}

// GoingToSleep opens a sleep session, clears skip state and the badge, and
// idles the scheduler until the next reschedule.
func (s *Scheduler) GoingToSleep(ctx context.Context) error {
	if err := s.validate(); err != nil {
		return err
	}
	sleeping, err := s.Sessions.IsSleeping(ctx)
	if err != nil {
		return fmt.Errorf("reminder: read session: %w", err)
	}
	if !sleeping {
		if _, err := s.Sessions.Start(ctx); err != nil {
			return fmt.Errorf("reminder: start session: %w", err)
		}
	}
	if _, err := s.Store.UpdateReminderState(ctx, func(st *State) error {
		st.ClearSkip()
		return nil
	}); err != nil {
		return fmt.Errorf("reminder: clear skip: %w", err)
	}
	s.Alarms.Cancel(AlarmSkip)
	s.Alarms.Cancel(AlarmBedtime)
	s.setPhase(PhaseIdle, time.Time{})
	s.observe(EventSlept)
	return s.clearBadge()
}

// Skip silences the reminder for SkipDuration without moving the daily alarm.
func (s *Scheduler) Skip(ctx context.Context) error {
	if err := s.validate(); err != nil {
		return err
	}
	now := s.now()
	st, err := s.Store.UpdateReminderState(ctx, func(st *State) error {
		return st.Snooze(now)
	})
	if err != nil {
		return fmt.Errorf("reminder: record skip: %w", err)
	}
	if err := s.RefreshBadge(ctx); err != nil {
		return err
	}
	s.Alarms.Schedule(AlarmSkip, *st.SkipUntil)
	s.mu.Lock()
	if s.phase != PhaseIdle {
		s.phase = PhaseSnoozed
	}
	s.mu.Unlock()
	s.observe(EventSkipped)
	s.log().Info("reminder skipped", zap.Time("until", *st.SkipUntil))
	return nil
}

// ClearStaleSkip forgets a skip recorded on an earlier calendar day.
func (s *Scheduler) ClearStaleSkip(ctx context.Context) error {
	now := s.now()
	cleared := false
	if _, err := s.Store.UpdateReminderState(ctx, func(st *State) error {
		if st.Skipped() && !timeutil.SameDay(now, *st.LastSkippedAt) {
			st.ClearSkip()
			cleared = true
		}
		return nil
	}); err != nil {
		return fmt.Errorf("reminder: clear stale skip: %w", err)
	}
	if !cleared {
		return nil
	}
	s.observe(EventStaleSkip)
	s.log().Info("cleared skip from a previous day")
	return s.clearBadge()
}

// RefreshBadge evaluates the reminder now and shows or clears the badge.
func (s *Scheduler) RefreshBadge(ctx context.Context) error {
	status, err := s.Status(ctx)
	if err != nil {
		return err
	}
	if !status.IsDue || status.BadgeText == "" {
		return s.clearBadge()
	}
	if s.Badge == nil {
		return nil
	}
	s.observe(EventBadgeUpdate)
	// Text goes last: a terminal badge prints its line on text changes.
	if err := s.Badge.SetColor(BadgeColor); err != nil {
		return fmt.Errorf("reminder: badge: %w", err)
	}
	if err := s.Badge.SetTitle(fmt.Sprintf("Past bedtime by %d min", status.MinutesPast)); err != nil {
		return fmt.Errorf("reminder: badge: %w", err)
	}
	if err := s.Badge.SetText(status.BadgeText); err != nil {
		return fmt.Errorf("reminder: badge: %w", err)
	}
	return nil
}

// Status evaluates the reminder against current persisted state.
func (s *Scheduler) Status(ctx context.Context) (Status, error) {
	if err := s.validate(); err != nil {
		return Status{}, err
	}
	now := s.now()
	st, err := s.Store.ReminderState(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("reminder: read state: %w", err)
	}
	sleeping, err := s.Sessions.IsSleeping(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("reminder: read session: %w", err)
	}
	sched, err := s.Store.EffectiveSchedule(ctx, now)
	if err != nil {
		return Status{}, fmt.Errorf("reminder: read schedule: %w", err)
	}
	return EvaluateAt(sched, now, sleeping, st)
}

func (s *Scheduler) clearBadge() error {
	if s.Badge == nil {
		return nil
	}
	if err := s.Badge.SetText(""); err != nil {
		return fmt.Errorf("reminder: badge: %w", err)
	}
	if err := s.Badge.SetTitle(DefaultTitle); err != nil {
		return fmt.Errorf("reminder: badge: %w", err)
	}
	return nil
}
