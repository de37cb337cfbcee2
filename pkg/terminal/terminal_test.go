package terminal

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"tableflip.dev/bedtime/pkg/reminder"
)

func TestBadgePrintsOnChange(t *testing.T) {
	var buf bytes.Buffer
	b := NewBadge(&buf)
	if err := b.SetColor(reminder.BadgeColor); err != nil {
		t.Fatal(err)
	}
	if err := b.SetText("12m"); err != nil {
		t.Fatal(err)
	}
	if err := b.SetText("12m"); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "12m"); got != 1 {
		t.Fatalf("expected one status line, got %d in %q", got, buf.String())
	}
	if err := b.SetText(""); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "" {
		t.Fatalf("text = %q", b.Text())
	}
}

func TestBadgeLineCarriesCurrentTitle(t *testing.T) {
	var buf bytes.Buffer
	b := NewBadge(&buf)
	for _, mins := range []int{35, 36} {
		buf.Reset()
		if err := b.SetTitle(fmt.Sprintf("Past bedtime by %d min", mins)); err != nil {
			t.Fatal(err)
		}
		if err := b.SetText(fmt.Sprintf("%dm", mins)); err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		last := lines[len(lines)-1]
		want := fmt.Sprintf("Past bedtime by %d min", mins)
		if !strings.Contains(last, fmt.Sprintf("%dm", mins)) || !strings.HasSuffix(last, want) {
			t.Fatalf("status line = %q, want %q after the text", last, want)
		}
	}
}

func TestBadgeRejectsBadColor(t *testing.T) {
	b := NewBadge(&bytes.Buffer{})
	if err := b.SetColor("teal"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestBadgeTitle(t *testing.T) {
	var buf bytes.Buffer
	b := NewBadge(&buf)
	if err := b.SetTitle("Past bedtime by 12 min"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Past bedtime by 12 min") {
		t.Fatalf("title not written: %q", buf.String())
	}
}

func TestNotifierPrintsWithoutPrompt(t *testing.T) {
	var buf bytes.Buffer
	n := &Notifier{Out: &buf, Now: func() time.Time {
		return time.Date(2024, 4, 1, 22, 45, 0, 0, time.UTC)
	}}
	err := n.Notify(context.Background(), reminder.Notification{
		Title:   "Time for bed",
		Message: "It's past your bedtime (22:30). Ready to sleep?",
		Actions: []string{"Going to sleep", "Skip 15 min"},
	})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Time for bed", "22:45", "past your bedtime (22:30)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
	select {
	case i := <-n.Actions():
		t.Fatalf("unexpected action %d", i)
	default:
	}
}

func TestActivity(t *testing.T) {
	ctx := context.Background()
	if !(Activity{AssumeActive: true}).Active(ctx) {
		t.Fatalf("AssumeActive must report active")
	}
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if (Activity{AssumeActive: true}).Active(cancelled) {
		t.Fatalf("cancelled context must report inactive")
	}
}
