// Package tips hands out one gentle, non-medical sleep tip per day.
package tips

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"tableflip.dev/bedtime/pkg/timeutil"
)

// Pool is the set of tips to choose from.
var Pool = []string{
	"Consistent wake times help regulate your internal clock.",
	"Caffeine late in the day can delay sleep.",
	"A cool room often helps with falling asleep.",
	"Bright screens before bed may keep you alert.",
	"A wind-down routine can signal it's time to rest.",
	"Regular physical activity supports better rest.",
	"Large meals close to bedtime can be uncomfortable.",
	"Daylight exposure during the day helps nighttime sleep.",
	"Quiet, dark environments are often more restful.",
	"Writing down tomorrow's tasks can ease a busy mind.",
	"Reading a book can be a calming pre-sleep activity.",
	"Consistent sleep times help your body's rhythm.",
	"Alcohol may help you fall asleep but can disrupt rest.",
	"A comfortable mattress and pillow make a difference.",
	"Naps later than 3 PM might affect nighttime sleep.",
}

// State remembers the last tip shown. LastIndex is -1 before any tip.
type State struct {
	LastDate  string `json:"lastTipDate,omitempty"`
	LastIndex int    `json:"lastTipIndex"`
}

// NewState returns the state of a user who has never seen a tip.
func NewState() State {
	return State{LastIndex: -1}
}

// ShownOn reports whether a tip was already shown on the date of now.
func (s State) ShownOn(now time.Time) bool {
	return s.LastDate != "" && s.LastDate == timeutil.DateKey(now)
}

// Repository persists State. UpdateTipState saves only when fn returns nil.
type Repository interface {
	UpdateTipState(ctx context.Context, fn func(*State) error) (State, error)
}

// Picker chooses today's tip.
type Picker struct {
	Repository Repository
	Now        func() time.Time
	// IntN returns a value in [0,n). Defaults to math/rand/v2.
	IntN func(n int) int
	// Pool overrides the package Pool when set.
	Pool []string
}

// Today returns a tip and true if none was shown yet today. A tip shown
// today yields ("", false).
func (p *Picker) Today(ctx context.Context) (string, bool, error) {
	if p.Repository == nil {
		return "", false, errors.New("tips: no repository configured")
	}
	pool := p.pool()
	if len(pool) == 0 {
		return "", false, nil
	}
	now := p.now()
	tip, shown := "", false
	_, err := p.Repository.UpdateTipState(ctx, func(s *State) error {
		if s.ShownOn(now) {
			return errSkip
		}
		i := p.pick(len(pool), s.LastIndex)
		s.LastDate = timeutil.DateKey(now)
		s.LastIndex = i
		tip, shown = pool[i], true
		return nil
	})
	if errors.Is(err, errSkip) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return tip, shown, nil
}

// Any returns a random tip without touching the daily state.
func (p *Picker) Any() string {
	pool := p.pool()
	if len(pool) == 0 {
		return ""
	}
	return pool[p.intN(len(pool))]
}

var errSkip = errors.New("tips: already shown today")

// pick draws an index different from last whenever there is a choice.
func (p *Picker) pick(n, last int) int {
	if n == 1 {
		return 0
	}
	if last < 0 || last >= n {
		return p.intN(n)
	}
	i := p.intN(n - 1)
	if i >= last {
		i++
	}
	return i
}

func (p *Picker) intN(n int) int {
	if p.IntN != nil {
		return p.IntN(n)
	}
	return rand.IntN(n)
}

func (p *Picker) pool() []string {
	if p.Pool != nil {
		return p.Pool
	}
	return Pool
}

func (p *Picker) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
