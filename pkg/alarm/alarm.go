// Package alarm arms named one-shot triggers and reports their firings on a
// channel so a single loop can handle them in order.
package alarm

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Clock keeps at most one pending trigger per name.
type Clock struct {
	mu      sync.Mutex
	pending map[string]*trigger
	seq     uint64
	fired   chan string
	done    chan struct{}
	closed  bool
	now     func() time.Time
	logger  *zap.Logger
}

type trigger struct {
	timer *time.Timer
	when  time.Time
	seq   uint64
}

// Option configures a Clock.
type Option func(*Clock)

// WithLogger sets the logger; the default discards.
func WithLogger(l *zap.Logger) Option {
	return func(c *Clock) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithNow replaces time.Now when computing delays.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) {
		if now != nil {
			c.now = now
		}
	}
}

// New returns a running Clock. Call Close to stop it.
func New(opts ...Option) *Clock {
	c := &Clock{
		pending: make(map[string]*trigger),
		fired:   make(chan string, 8),
		done:    make(chan struct{}),
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Schedule arms name to fire at when, replacing any pending trigger of the
// same name. A time in the past fires right away.
func (c *Clock) Schedule(name string, when time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if prev, ok := c.pending[name]; ok {
		prev.timer.Stop()
	}
	c.seq++
	seq := c.seq
	delay := when.Sub(c.now())
	if delay < 0 {
		delay = 0
	}
	c.pending[name] = &trigger{
		when: when,
		seq:  seq,
		timer: time.AfterFunc(delay, func() {
			c.fire(name, seq)
		}),
	}
	c.logger.Debug("alarm scheduled", zap.String("alarm", name), zap.Time("when", when))
}

// Cancel disarms name. Unknown names are ignored.
func (c *Clock) Cancel(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.pending[name]; ok {
		prev.timer.Stop()
		delete(c.pending, name)
		c.logger.Debug("alarm cancelled", zap.String("alarm", name))
	}
}

// Pending returns when name will fire, if it is armed.
func (c *Clock) Pending(name string) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.pending[name]
	if !ok {
		return time.Time{}, false
	}
	return t.when, true
}

// FireDue disarms every trigger whose time is at or before now and returns
// their names, earliest first. Timers run on elapsed time, so after a
// suspend the wall clock can pass a trigger that has not gone off yet.
func (c *Clock) FireDue(now time.Time) []string {
	now = now.Round(0)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	type due struct {
		name string
		when time.Time
	}
	var ready []due
	for name, t := range c.pending {
		if t.when.After(now) {
			continue
		}
		t.timer.Stop()
		delete(c.pending, name)
		ready = append(ready, due{name: name, when: t.when})
	}
	sort.Slice(ready, func(i, j int) bool {
		if ready[i].when.Equal(ready[j].when) {
			return ready[i].name < ready[j].name
		}
		return ready[i].when.Before(ready[j].when)
	})
	names := make([]string, 0, len(ready))
	for _, d := range ready {
		c.logger.Debug("alarm overdue", zap.String("alarm", d.name), zap.Time("when", d.when))
		names = append(names, d.name)
	}
	return names
}

// Fired delivers the name of every trigger that goes off.
func (c *Clock) Fired() <-chan string {
	return c.fired
}

// Close stops every pending trigger. Nothing is delivered afterwards.
func (c *Clock) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for name, t := range c.pending {
		t.timer.Stop()
		delete(c.pending, name)
	}
	close(c.done)
}

func (c *Clock) fire(name string, seq uint64) {
	c.mu.Lock()
	t, ok := c.pending[name]
	if !ok || t.seq != seq || c.closed {
		// Replaced or cancelled after the timer already started running.
		c.mu.Unlock()
		return
	}
	delete(c.pending, name)
	c.mu.Unlock()

	c.logger.Debug("alarm fired", zap.String("alarm", name))
	select {
	case c.fired <- name:
	case <-c.done:
	}
}
