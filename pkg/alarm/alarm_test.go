package alarm

import (
	"testing"
	"time"
)

func expectFired(t *testing.T, c *Clock, want string) {
	t.Helper()
	select {
	case got := <-c.Fired():
		if got != want {
			t.Fatalf("fired %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %q", want)
	}
}

func expectQuiet(t *testing.T, c *Clock, d time.Duration) {
	t.Helper()
	select {
	case got := <-c.Fired():
		t.Fatalf("unexpected firing of %q", got)
	case <-time.After(d):
	}
}

func TestScheduleFires(t *testing.T) {
	c := New()
	defer c.Close()
	c.Schedule("bedtimeReminder", time.Now().Add(10*time.Millisecond))
	if _, ok := c.Pending("bedtimeReminder"); !ok {
		t.Fatalf("expected pending trigger")
	}
	expectFired(t, c, "bedtimeReminder")
	if _, ok := c.Pending("bedtimeReminder"); ok {
		t.Fatalf("fired trigger must not stay pending")
	}
}

func TestScheduleReplacesByName(t *testing.T) {
	c := New()
	defer c.Close()
	c.Schedule("skipReminder", time.Now().Add(10*time.Millisecond))
	later := time.Now().Add(80 * time.Millisecond)
	c.Schedule("skipReminder", later)
	if when, _ := c.Pending("skipReminder"); !when.Equal(later) {
		t.Fatalf("pending = %v, want %v", when, later)
	}
	expectFired(t, c, "skipReminder")
	expectQuiet(t, c, 150*time.Millisecond)
}

func TestCancel(t *testing.T) {
	c := New()
	defer c.Close()
	c.Schedule("bedtimeReminder", time.Now().Add(20*time.Millisecond))
	c.Cancel("bedtimeReminder")
	c.Cancel("unknown")
	expectQuiet(t, c, 80*time.Millisecond)
}

func TestPastTimeFiresImmediately(t *testing.T) {
	c := New()
	defer c.Close()
	c.Schedule("updateBadge", time.Now().Add(-time.Hour))
	expectFired(t, c, "updateBadge")
}

func TestCloseStopsEverything(t *testing.T) {
	c := New()
	c.Schedule("bedtimeReminder", time.Now().Add(20*time.Millisecond))
	c.Close()
	c.Close()
	c.Schedule("bedtimeReminder", time.Now())
	expectQuiet(t, c, 80*time.Millisecond)
}

func TestFireDueCatchesUpAfterSuspend(t *testing.T) {
	now := time.Date(2024, 4, 1, 18, 0, 0, 0, time.Local)
	c := New(WithNow(func() time.Time { return now }))
	defer c.Close()
	c.Schedule("bedtimeReminder", time.Date(2024, 4, 1, 22, 45, 0, 0, time.Local))
	c.Schedule("skipReminder", time.Date(2024, 4, 1, 22, 50, 0, 0, time.Local))
	c.Schedule("later", time.Date(2024, 4, 1, 23, 30, 0, 0, time.Local))

	if got := c.FireDue(now); len(got) != 0 {
		t.Fatalf("nothing is due at 18:00, got %v", got)
	}

	// The wall clock jumps past both triggers while their timers still wait.
	now = time.Date(2024, 4, 1, 23, 0, 0, 0, time.Local)
	got := c.FireDue(now)
	if len(got) != 2 || got[0] != "bedtimeReminder" || got[1] != "skipReminder" {
		t.Fatalf("due = %v, want [bedtimeReminder skipReminder]", got)
	}
	for _, name := range got {
		if _, ok := c.Pending(name); ok {
			t.Fatalf("%s still pending after FireDue", name)
		}
	}
	if _, ok := c.Pending("later"); !ok {
		t.Fatalf("future trigger must stay armed")
	}
	if got := c.FireDue(now); len(got) != 0 {
		t.Fatalf("second FireDue = %v, want none", got)
	}
	expectQuiet(t, c, 50*time.Millisecond)
}
