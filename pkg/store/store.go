package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"tableflip.dev/bedtime/pkg/reminder"
	"tableflip.dev/bedtime/pkg/schedule"
	"tableflip.dev/bedtime/pkg/session"
	"tableflip.dev/bedtime/pkg/tips"
)

// Keys under which each entity is persisted.
const (
	KeyScheduleDefault  = "schedule-default"
	KeyScheduleOverride = "schedule-override"
	KeyReminderState    = "reminder-state"
	KeySessionCurrent   = "session-current"
	KeySessionLog       = "session-log"
	KeyTipsState        = "tips-state"
)

// AllKeys lists every key the store writes.
var AllKeys = []string{
	KeyReminderState,
	KeyScheduleDefault,
	KeyScheduleOverride,
	KeySessionCurrent,
	KeySessionLog,
	KeyTipsState,
}

// Store gives typed access to the persisted entities. Every
// read-modify-write holds the locks of the keys it touches, so concurrent
// updates within a process never lose writes.
type Store struct {
	p     Persistence
	locks keyLocks
}

// New wraps p.
func New(p Persistence) *Store {
	return &Store{p: p}
}

// Watch forwards change events from the underlying persistence.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	return s.p.Watch(ctx)
}

// DefaultSchedule returns the recurring schedule, or schedule.Default when
// none was saved.
func (s *Store) DefaultSchedule(ctx context.Context) (schedule.Schedule, error) {
	def := schedule.Default()
	if err := s.read(ctx, KeyScheduleDefault, &def); err != nil {
		return schedule.Schedule{}, err
	}
	return def, nil
}

// Override returns the saved one-day override, or nil.
func (s *Store) Override(ctx context.Context) (*schedule.Override, error) {
	var o *schedule.Override
	if err := s.read(ctx, KeyScheduleOverride, &o); err != nil {
		return nil, err
	}
	return o, nil
}

// EffectiveSchedule resolves the schedule for the date of now. An override
// dated before today is erased as a side effect.
func (s *Store) EffectiveSchedule(ctx context.Context, now time.Time) (schedule.Schedule, error) {
	def, err := s.DefaultSchedule(ctx)
	if err != nil {
		return schedule.Schedule{}, err
	}
	o, err := s.Override(ctx)
	if err != nil {
		return schedule.Schedule{}, err
	}
	eff, expired := schedule.Effective(def, o, now)
	if !expired {
		return eff, nil
	}

	unlock := s.locks.lock(KeyScheduleOverride)
	defer unlock()
	// Re-read under the lock; a newer override may have landed meanwhile.
	o, err = s.Override(ctx)
	if err != nil {
		return schedule.Schedule{}, err
	}
	if o.ExpiredOn(now) {
		if err := s.p.Erase(KeyScheduleOverride); err != nil {
			return schedule.Schedule{}, err
		}
		return def, nil
	}
	eff, _ = schedule.Effective(def, o, now)
	return eff, nil
}

// UpdateSchedule applies p. With ScopeEveryday the recurring schedule is
// merged and any override cleared; the new schedule is returned. With
// ScopeTomorrow p is stored as an override dated tomorrow, layered over an
// existing override for the same date; the schedule tomorrow will use is
// returned. The result is validated before anything is written.
func (s *Store) UpdateSchedule(ctx context.Context, p schedule.Patch, scope schedule.Scope, now time.Time) (schedule.Schedule, error) {
	unlock := s.locks.lock(KeyScheduleDefault, KeyScheduleOverride)
	defer unlock()

	def, err := s.DefaultSchedule(ctx)
	if err != nil {
		return schedule.Schedule{}, err
	}

	switch scope {
	case schedule.ScopeEveryday, "":
		next := p.Apply(def)
		if err := next.Validate(); err != nil {
			return schedule.Schedule{}, err
		}
		if err := s.write(KeyScheduleDefault, next); err != nil {
			return schedule.Schedule{}, err
		}
		if err := s.p.Erase(KeyScheduleOverride); err != nil {
			return schedule.Schedule{}, err
		}
		return next, nil

	case schedule.ScopeTomorrow:
		o := schedule.NewOverride(p, now)
		prev, err := s.Override(ctx)
		if err != nil {
			return schedule.Schedule{}, err
		}
		if prev != nil && prev.Date == o.Date {
			o.Patch = prev.Patch.Merge(p)
		}
		next := o.Apply(def)
		if err := next.Validate(); err != nil {
			return schedule.Schedule{}, err
		}
		if err := s.write(KeyScheduleOverride, o); err != nil {
			return schedule.Schedule{}, err
		}
		return next, nil

	default:
		return schedule.Schedule{}, fmt.Errorf("store: unknown scope %q", scope)
	}
}

// ReminderState returns the persisted reminder state; reminders start
// disabled.
func (s *Store) ReminderState(ctx context.Context) (reminder.State, error) {
	var st reminder.State
	if err := s.read(ctx, KeyReminderState, &st); err != nil {
		return reminder.State{}, err
	}
	return st, nil
}

// UpdateReminderState runs fn on the current state and saves the result when
// fn returns nil.
func (s *Store) UpdateReminderState(ctx context.Context, fn func(*reminder.State) error) (reminder.State, error) {
	return update(ctx, s, KeyReminderState, reminder.State{}, fn)
}

// TipState returns the persisted tip state.
func (s *Store) TipState(ctx context.Context) (tips.State, error) {
	st := tips.NewState()
	if err := s.read(ctx, KeyTipsState, &st); err != nil {
		return tips.State{}, err
	}
	return st, nil
}

// UpdateTipState runs fn on the current tip state and saves the result when
// fn returns nil.
func (s *Store) UpdateTipState(ctx context.Context, fn func(*tips.State) error) (tips.State, error) {
	return update(ctx, s, KeyTipsState, tips.NewState(), fn)
}

// Journal returns the open session and the log.
func (s *Store) Journal(ctx context.Context) (session.Journal, error) {
	var j session.Journal
	if err := s.read(ctx, KeySessionCurrent, &j.Current); err != nil {
		return session.Journal{}, err
	}
	if err := s.read(ctx, KeySessionLog, &j.Entries); err != nil {
		return session.Journal{}, err
	}
	return j, nil
}

// UpdateJournal runs fn over the journal with both session keys locked and
// saves the result when fn returns nil.
func (s *Store) UpdateJournal(ctx context.Context, fn func(*session.Journal) error) error {
	unlock := s.locks.lock(KeySessionCurrent, KeySessionLog)
	defer unlock()

	j, err := s.Journal(ctx)
	if err != nil {
		return err
	}
	if err := fn(&j); err != nil {
		return err
	}
	if j.Current.Open() {
		if err := s.write(KeySessionCurrent, j.Current); err != nil {
			return err
		}
	} else if err := s.p.Erase(KeySessionCurrent); err != nil {
		return err
	}
	if j.Entries == nil {
		j.Entries = []session.LogEntry{}
	}
	return s.write(KeySessionLog, j.Entries)
}

// ClearAll erases every stored key. Subsequent reads return defaults.
func (s *Store) ClearAll(ctx context.Context) error {
	unlock := s.locks.lock(AllKeys...)
	defer unlock()

	seen := map[string]struct{}{}
	keys := append(append([]string(nil), AllKeys...), s.p.Keys(ctx)...)
	var errs []error
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if err := s.p.Erase(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// read decodes key into v, leaving v untouched when the key is absent.
func (s *Store) read(ctx context.Context, key string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := s.p.Read(key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("store: decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) write(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	return s.p.Write(key, raw)
}

func update[T any](ctx context.Context, s *Store, key string, def T, fn func(*T) error) (T, error) {
	unlock := s.locks.lock(key)
	defer unlock()

	cur := def
	if err := s.read(ctx, key, &cur); err != nil {
		return def, err
	}
	before, err := json.Marshal(cur)
	if err != nil {
		return cur, fmt.Errorf("store: encode %s: %w", key, err)
	}
	next := cur
	if err := fn(&next); err != nil {
		return cur, err
	}
	after, err := json.Marshal(next)
	if err != nil {
		return cur, fmt.Errorf("store: encode %s: %w", key, err)
	}
	// Unchanged values are not rewritten, so watchers see no event.
	if bytes.Equal(before, after) {
		return next, nil
	}
	if err := s.p.Write(key, after); err != nil {
		return cur, err
	}
	return next, nil
}

// keyLocks hands out one mutex per key.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// lock acquires the locks for keys in sorted order and returns the release.
func (k *keyLocks) lock(keys ...string) func() {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	held := make([]*sync.Mutex, 0, len(sorted))
	for i, key := range sorted {
		if i > 0 && sorted[i-1] == key {
			continue
		}
		m, ok := k.locks[key]
		if !ok {
			m = &sync.Mutex{}
			k.locks[key] = m
		}
		held = append(held, m)
	}
	k.mu.Unlock()

	for _, m := range held {
		m.Lock()
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
