package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tableflip.dev/bedtime/pkg/schedule"
)

type fakeStore struct {
	mu       sync.Mutex
	schedule schedule.Schedule
	state    State
}

func (f *fakeStore) EffectiveSchedule(_ context.Context, _ time.Time) (schedule.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.schedule, nil
}

func (f *fakeStore) ReminderState(_ context.Context) (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, nil
}

func (f *fakeStore) UpdateReminderState(_ context.Context, fn func(*State) error) (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := f.state
	if err := fn(&next); err != nil {
		return f.state, err
	}
	f.state = next
	return next, nil
}

type fakeSessions struct {
	sleeping bool
	started  int
}

func (f *fakeSessions) IsSleeping(context.Context) (bool, error) { return f.sleeping, nil }

func (f *fakeSessions) Start(context.Context) (time.Time, error) {
	f.sleeping = true
	f.started++
	return time.Time{}, nil
}

type fakeAlarms struct {
	pending map[string]time.Time
}

func newFakeAlarms() *fakeAlarms { return &fakeAlarms{pending: map[string]time.Time{}} }

func (f *fakeAlarms) Schedule(name string, when time.Time) { f.pending[name] = when }
func (f *fakeAlarms) Cancel(name string)                   { delete(f.pending, name) }

type fakeNotifier struct{ sent []Notification }

func (f *fakeNotifier) Notify(_ context.Context, n Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

type fakeBadge struct {
	text, color, title string
	// shown is the text with the title current when the text was set.
	shown string
}

func (f *fakeBadge) SetText(text string) error {
	f.text = text
	f.shown = text + " " + f.title
	return nil
}

func (f *fakeBadge) SetColor(color string) error { f.color = color; return nil }
func (f *fakeBadge) SetTitle(title string) error { f.title = title; return nil }

type fakeActivity struct{ active bool }

func (f fakeActivity) Active(context.Context) bool { return f.active }

type fixture struct {
	now      time.Time
	store    *fakeStore
	sessions *fakeSessions
	alarms   *fakeAlarms
	notifier *fakeNotifier
	badge    *fakeBadge
	s        *Scheduler
}

func newFixture(now time.Time, enabled, active bool) *fixture {
	f := &fixture{
		now:      now,
		store:    &fakeStore{schedule: schedule.Default(), state: State{Enabled: enabled}},
		sessions: &fakeSessions{},
		alarms:   newFakeAlarms(),
		notifier: &fakeNotifier{},
		badge:    &fakeBadge{},
	}
	f.s = &Scheduler{
		Store:    f.store,
		Sessions: f.sessions,
		Alarms:   f.alarms,
		Notifier: f.notifier,
		Badge:    f.badge,
		Activity: fakeActivity{active: active},
		Now:      func() time.Time { return f.now },
	}
	return f
}

func at(d, h, m int) time.Time { return time.Date(2024, 3, d, h, m, 0, 0, time.UTC) }

func TestRescheduleArmsToday(t *testing.T) {
	f := newFixture(at(4, 18, 0), true, true)
	if err := f.s.Reschedule(context.Background()); err != nil {
		t.Fatal(err)
	}
	got, ok := f.alarms.pending[AlarmBedtime]
	if !ok || !got.Equal(at(4, 22, 45)) {
		t.Fatalf("bedtime alarm = %v (%v), want %v", got, ok, at(4, 22, 45))
	}
	if p, target := f.s.Phase(); p != PhaseArmed || !target.Equal(got) {
		t.Fatalf("phase = %v target %v", p, target)
	}
}

func TestRescheduleRollsToTomorrow(t *testing.T) {
	f := newFixture(at(4, 23, 30), true, true)
	if err := f.s.Reschedule(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := f.alarms.pending[AlarmBedtime]; !got.Equal(at(5, 22, 45)) {
		t.Fatalf("bedtime alarm = %v, want tomorrow", got)
	}
}

func TestRescheduleDisabledGoesIdle(t *testing.T) {
	f := newFixture(at(4, 18, 0), true, true)
	ctx := context.Background()
	if err := f.s.Reschedule(ctx); err != nil {
		t.Fatal(err)
	}
	f.alarms.Schedule(AlarmSkip, at(4, 19, 0))
	f.store.state.Enabled = false
	if err := f.s.Reschedule(ctx); err != nil {
		t.Fatal(err)
	}
	if len(f.alarms.pending) != 0 {
		t.Fatalf("expected no pending alarms, got %v", f.alarms.pending)
	}
	if p, _ := f.s.Phase(); p != PhaseIdle {
		t.Fatalf("phase = %v, want idle", p)
	}
	if f.badge.title != DefaultTitle || f.badge.text != "" {
		t.Fatalf("badge not cleared: %+v", f.badge)
	}
}

func TestBedtimeAlarmNotifiesAndRearms(t *testing.T) {
	f := newFixture(at(4, 18, 0), true, true)
	ctx := context.Background()
	if err := f.s.Reschedule(ctx); err != nil {
		t.Fatal(err)
	}
	f.now = at(4, 22, 45)
	if err := f.s.HandleAlarm(ctx, AlarmBedtime); err != nil {
		t.Fatal(err)
	}
	if len(f.notifier.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(f.notifier.sent))
	}
	n := f.notifier.sent[0]
	if len(n.Actions) != 2 || n.Actions[ActionGoingToSleep] != "Going to sleep" || n.Actions[ActionSkip] != "Skip 15 min" {
		t.Fatalf("unexpected actions %v", n.Actions)
	}
	if got := f.alarms.pending[AlarmBedtime]; !got.Equal(at(5, 22, 45)) {
		t.Fatalf("expected re-arm for tomorrow, got %v", got)
	}
}

func TestBedtimeAlarmEarlyTimerDoesNotRefireTonight(t *testing.T) {
	f := newFixture(at(4, 18, 0), true, true)
	ctx := context.Background()
	if err := f.s.Reschedule(ctx); err != nil {
		t.Fatal(err)
	}
	f.now = at(4, 22, 44)
	if err := f.s.HandleAlarm(ctx, AlarmBedtime); err != nil {
		t.Fatal(err)
	}
	if got := f.alarms.pending[AlarmBedtime]; !got.Equal(at(5, 22, 45)) {
		t.Fatalf("expected tomorrow, got %v", got)
	}
}

func TestBedtimeAlarmSuppressed(t *testing.T) {
	t.Run("inactive", func(t *testing.T) {
		f := newFixture(at(4, 22, 45), true, false)
		if err := f.s.HandleAlarm(context.Background(), AlarmBedtime); err != nil {
			t.Fatal(err)
		}
		if len(f.notifier.sent) != 0 {
			t.Fatalf("inactive user must not be notified")
		}
		if _, ok := f.alarms.pending[AlarmBedtime]; !ok {
			t.Fatalf("daily alarm must be re-armed even when suppressed")
		}
	})
	t.Run("sleeping", func(t *testing.T) {
		f := newFixture(at(4, 22, 45), true, true)
		f.sessions.sleeping = true
		if err := f.s.HandleAlarm(context.Background(), AlarmBedtime); err != nil {
			t.Fatal(err)
		}
		if len(f.notifier.sent) != 0 {
			t.Fatalf("sleeping user must not be notified")
		}
	})
}

func TestSkipSnoozesWithoutMovingDailyAlarm(t *testing.T) {
	f := newFixture(at(4, 18, 0), true, true)
	ctx := context.Background()
	if err := f.s.Reschedule(ctx); err != nil {
		t.Fatal(err)
	}
	daily := f.alarms.pending[AlarmBedtime]

	f.now = at(4, 23, 0)
	if err := f.s.HandleAction(ctx, ActionSkip); err != nil {
		t.Fatal(err)
	}
	if got := f.alarms.pending[AlarmSkip]; !got.Equal(at(4, 23, 15)) {
		t.Fatalf("skip alarm = %v", got)
	}
	if got := f.alarms.pending[AlarmBedtime]; !got.Equal(daily) {
		t.Fatalf("daily alarm moved from %v to %v", daily, got)
	}
	st := f.store.state
	if st.LastSkippedAt == nil || st.SkipUntil == nil {
		t.Fatalf("skip state not recorded: %+v", st)
	}
	if p, _ := f.s.Phase(); p != PhaseSnoozed {
		t.Fatalf("phase = %v, want snoozed", p)
	}
	if f.badge.text != "15m" || f.badge.color != BadgeColor || f.badge.title != "Past bedtime by 15 min" {
		t.Fatalf("badge = %+v", f.badge)
	}

	f.now = at(4, 23, 15)
	if err := f.s.HandleAlarm(ctx, AlarmSkip); err != nil {
		t.Fatal(err)
	}
	if f.badge.text != "30m" {
		t.Fatalf("badge after snooze = %q, want 30m", f.badge.text)
	}
	if p, _ := f.s.Phase(); p != PhaseArmed {
		t.Fatalf("phase after snooze = %v", p)
	}
}

func TestSkipAlarmWhileSleepingClearsBadge(t *testing.T) {
	f := newFixture(at(4, 23, 0), true, true)
	ctx := context.Background()
	if err := f.s.Skip(ctx); err != nil {
		t.Fatal(err)
	}
	f.sessions.sleeping = true
	f.now = at(4, 23, 15)
	if err := f.s.HandleAlarm(ctx, AlarmSkip); err != nil {
		t.Fatal(err)
	}
	if f.badge.text != "" || len(f.notifier.sent) != 0 {
		t.Fatalf("badge = %q, notifications = %d", f.badge.text, len(f.notifier.sent))
	}
}

func TestGoingToSleep(t *testing.T) {
	f := newFixture(at(4, 23, 0), true, true)
	ctx := context.Background()
	if err := f.s.Reschedule(ctx); err != nil {
		t.Fatal(err)
	}
	if err := f.s.Skip(ctx); err != nil {
		t.Fatal(err)
	}
	if err := f.s.HandleAction(ctx, ActionGoingToSleep); err != nil {
		t.Fatal(err)
	}
	if f.sessions.started != 1 || !f.sessions.sleeping {
		t.Fatalf("session not opened")
	}
	if f.store.state.Skipped() {
		t.Fatalf("skip state must be cleared")
	}
	if len(f.alarms.pending) != 0 {
		t.Fatalf("pending alarms: %v", f.alarms.pending)
	}
	if f.badge.text != "" {
		t.Fatalf("badge not cleared")
	}
	if err := f.s.GoingToSleep(ctx); err != nil {
		t.Fatal(err)
	}
	if f.sessions.started != 1 {
		t.Fatalf("second going-to-sleep must not open another session")
	}
}

func TestBadgeTickClearsStaleSkip(t *testing.T) {
	f := newFixture(at(4, 23, 50), true, true)
	ctx := context.Background()
	if err := f.s.Skip(ctx); err != nil {
		t.Fatal(err)
	}
	f.now = at(5, 0, 10)
	if err := f.s.HandleAlarm(ctx, AlarmBadge); err != nil {
		t.Fatal(err)
	}
	if f.store.state.Skipped() {
		t.Fatalf("skip from previous day must be cleared")
	}
	if f.badge.text != "" {
		t.Fatalf("badge not cleared, got %q", f.badge.text)
	}
}

func TestBadgeTickKeepsSameDaySkip(t *testing.T) {
	f := newFixture(at(4, 23, 0), true, true)
	ctx := context.Background()
	if err := f.s.Skip(ctx); err != nil {
		t.Fatal(err)
	}
	f.now = at(4, 23, 5)
	if err := f.s.HandleAlarm(ctx, AlarmBadge); err != nil {
		t.Fatal(err)
	}
	if !f.store.state.Skipped() {
		t.Fatalf("same-day skip must survive")
	}
	if f.badge.text != "20m" {
		t.Fatalf("badge = %q, want 20m", f.badge.text)
	}
}

func TestBadgeTitleMatchesText(t *testing.T) {
	f := newFixture(at(4, 23, 0), true, true)
	ctx := context.Background()
	if err := f.s.Skip(ctx); err != nil {
		t.Fatal(err)
	}
	for _, tt := range []struct {
		min  int
		want string
	}{
		{min: 5, want: "20m Past bedtime by 20 min"},
		{min: 6, want: "21m Past bedtime by 21 min"},
	} {
		f.now = at(4, 23, tt.min)
		if err := f.s.HandleAlarm(ctx, AlarmBadge); err != nil {
			t.Fatal(err)
		}
		if f.badge.shown != tt.want {
			t.Fatalf("at 23:%02d badge shown %q, want %q", tt.min, f.badge.shown, tt.want)
		}
	}
}

func TestUnknownAlarmAndAction(t *testing.T) {
	f := newFixture(at(4, 23, 0), true, true)
	if err := f.s.HandleAlarm(context.Background(), "nope"); err == nil {
		t.Fatalf("expected error for unknown alarm")
	}
	if err := f.s.HandleAction(context.Background(), 7); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}

func TestResyncArmsSkipRecordedElsewhere(t *testing.T) {
	f := newFixture(at(4, 22, 50), true, true)
	ctx := context.Background()
	f.store.state.Skip(at(4, 22, 48))
	if err := f.s.Resync(ctx); err != nil {
		t.Fatal(err)
	}
	if got := f.alarms.pending[AlarmSkip]; !got.Equal(at(4, 23, 3)) {
		t.Fatalf("skip alarm = %v", got)
	}
	if p, _ := f.s.Phase(); p != PhaseSnoozed {
		t.Fatalf("phase = %v, want snoozed", p)
	}

	f.store.state.ClearSkip()
	if err := f.s.Resync(ctx); err != nil {
		t.Fatal(err)
	}
	if _, ok := f.alarms.pending[AlarmSkip]; ok {
		t.Fatalf("cleared skip must cancel the re-check")
	}
}

func TestSkipRequiresReminders(t *testing.T) {
	f := newFixture(at(4, 23, 0), false, true)
	ctx := context.Background()
	if err := f.s.HandleAction(ctx, ActionSkip); !errors.Is(err, ErrRemindersOff) {
		t.Fatalf("expected ErrRemindersOff, got %v", err)
	}
	if f.store.state.Skipped() {
		t.Fatalf("skip recorded while reminders are off: %+v", f.store.state)
	}
	if _, ok := f.alarms.pending[AlarmSkip]; ok {
		t.Fatalf("skip alarm armed while reminders are off")
	}
}
