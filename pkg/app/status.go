package app

import (
	"context"
	"time"

	"tableflip.dev/bedtime/pkg/reminder"
	"tableflip.dev/bedtime/pkg/schedule"
	"tableflip.dev/bedtime/pkg/summary"
)

// StatusResult is a snapshot of where the user stands right now.
type StatusResult struct {
	Now           time.Time         `json:"now"`
	Schedule      schedule.Schedule `json:"schedule"`
	Reminders     bool              `json:"reminders"`
	Reminder      reminder.Status   `json:"reminder"`
	SkipUntil     *time.Time        `json:"skipUntil,omitempty"`
	NextReminder  *time.Time        `json:"nextReminder,omitempty"`
	Sleeping      bool              `json:"sleeping"`
	SleepingSince *time.Time        `json:"sleepingSince,omitempty"`
	Last          *summary.Summary  `json:"last,omitempty"`
}

// Status evaluates the reminder and gathers the open session and the last
// logged night.
func (s *Service) Status(ctx context.Context) (StatusResult, error) {
	st, err := s.store()
	if err != nil {
		return StatusResult{}, err
	}
	now := s.now()
	sched, err := st.EffectiveSchedule(ctx, now)
	if err != nil {
		return StatusResult{}, err
	}
	rs, err := st.ReminderState(ctx)
	if err != nil {
		return StatusResult{}, err
	}
	log := s.Sessions()
	cur, err := log.Current(ctx)
	if err != nil {
		return StatusResult{}, err
	}
	eval, err := reminder.EvaluateAt(sched, now, cur != nil, rs)
	if err != nil {
		return StatusResult{}, err
	}
	last, err := log.LastEntry(ctx)
	if err != nil {
		return StatusResult{}, err
	}

	r := StatusResult{
		Now:       now,
		Schedule:  sched,
		Reminders: rs.Enabled,
		Reminder:  eval,
		Sleeping:  cur != nil,
		Last:      summary.Summarize(last, sched.SleepLatencyMinutes, now.Location()),
	}
	if cur != nil {
		since := cur.SleepAt
		r.SleepingSince = &since
	}
	if rs.SkipUntil != nil && rs.SkipUntil.After(now) {
		r.SkipUntil = rs.SkipUntil
	}
	if rs.Enabled && cur == nil {
		next, err := reminder.NextFire(sched, now)
		if err != nil {
			return StatusResult{}, err
		}
		r.NextReminder = &next
	}
	return r, nil
}
