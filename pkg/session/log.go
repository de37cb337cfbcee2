package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/bedtime/pkg/timeutil"
)

// RetentionDays is how many calendar days of entries the log keeps.
const RetentionDays = 30

// ErrAlreadySleeping is returned by Start while a session is open.
var ErrAlreadySleeping = errors.New("session: a sleep session is already open")

// Repository persists the journal. UpdateJournal runs fn with exclusive
// access and saves the journal only when fn returns nil.
type Repository interface {
	Journal(ctx context.Context) (Journal, error)
	UpdateJournal(ctx context.Context, fn func(j *Journal) error) error
}

// Log opens and closes sleep sessions and answers queries over the log.
type Log struct {
	Repository Repository
	Now        func() time.Time
}

func (l *Log) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Log) repo() (Repository, error) {
	if l.Repository == nil {
		return nil, errors.New("session: no repository configured")
	}
	return l.Repository, nil
}

// IsSleeping reports whether a session is open.
func (l *Log) IsSleeping(ctx context.Context) (bool, error) {
	r, err := l.repo()
	if err != nil {
		return false, err
	}
	j, err := r.Journal(ctx)
	if err != nil {
		return false, err
	}
	return j.Current.Open(), nil
}

// Current returns the open session, or nil.
func (l *Log) Current(ctx context.Context) (*Session, error) {
	r, err := l.repo()
	if err != nil {
		return nil, err
	}
	j, err := r.Journal(ctx)
	if err != nil {
		return nil, err
	}
	if !j.Current.Open() {
		return nil, nil
	}
	return j.Current, nil
}

// Start opens a session at now.
func (l *Log) Start(ctx context.Context) (time.Time, error) {
	r, err := l.repo()
	if err != nil {
		return time.Time{}, err
	}
	now := l.now()
	err = r.UpdateJournal(ctx, func(j *Journal) error {
		if j.Current.Open() {
			return ErrAlreadySleeping
		}
		j.Current = &Session{SleepAt: now}
		return nil
	})
	if err != nil {
		return time.Time{}, err
	}
	return now, nil
}

// End closes the open session, appends it to the log and prunes entries
// older than RetentionDays. It returns nil when no session is open.
func (l *Log) End(ctx context.Context, mood *Mood) (*LogEntry, error) {
	r, err := l.repo()
	if err != nil {
		return nil, err
	}
	now := l.now()
	var entry *LogEntry
	err = r.UpdateJournal(ctx, func(j *Journal) error {
		if !j.Current.Open() {
			return nil
		}
		entry = &LogEntry{
			ID:      uuid.NewString(),
			Date:    timeutil.DateKey(now),
			SleepAt: j.Current.SleepAt,
			WakeAt:  now,
			Mood:    mood,
		}
		j.Entries = Prune(append(j.Entries, *entry), now)
		j.Current = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Cancel discards the open session without logging it.
func (l *Log) Cancel(ctx context.Context) (bool, error) {
	r, err := l.repo()
	if err != nil {
		return false, err
	}
	cancelled := false
	err = r.UpdateJournal(ctx, func(j *Journal) error {
		cancelled = j.Current.Open()
		j.Current = nil
		return nil
	})
	return cancelled, err
}

// LastEntry returns the most recent entry, or nil.
func (l *Log) LastEntry(ctx context.Context) (*LogEntry, error) {
	r, err := l.repo()
	if err != nil {
		return nil, err
	}
	j, err := r.Journal(ctx)
	if err != nil {
		return nil, err
	}
	if len(j.Entries) == 0 {
		return nil, nil
	}
	last := j.Entries[len(j.Entries)-1]
	return &last, nil
}

// EntriesInRange returns entries dated between start and end, inclusive.
func (l *Log) EntriesInRange(ctx context.Context, start, end time.Time) ([]LogEntry, error) {
	r, err := l.repo()
	if err != nil {
		return nil, err
	}
	j, err := r.Journal(ctx)
	if err != nil {
		return nil, err
	}
	return InRange(j.Entries, start, end), nil
}

// WeeklyEntries returns entries for today and the six days before it.
func (l *Log) WeeklyEntries(ctx context.Context) ([]LogEntry, error) {
	now := l.now()
	return l.EntriesInRange(ctx, now.AddDate(0, 0, -6), now)
}

// Prune drops entries dated more than RetentionDays before now.
func Prune(entries []LogEntry, now time.Time) []LogEntry {
	cutoff := timeutil.DateKey(now.AddDate(0, 0, -RetentionDays))
	out := entries[:0:0]
	for _, e := range entries {
		if e.Date >= cutoff {
			out = append(out, e)
		}
	}
	return out
}

// InRange filters entries whose date falls within [start, end] by calendar day.
func InRange(entries []LogEntry, start, end time.Time) []LogEntry {
	from, to := timeutil.DateKey(start), timeutil.DateKey(end)
	if from > to {
		from, to = to, from
	}
	out := make([]LogEntry, 0, len(entries))
	for _, e := range entries {
		if e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	return out
}
