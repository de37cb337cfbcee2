// Package terminal hosts the reminder collaborators on a plain terminal: a
// printed notification with an action prompt, a status line standing in for
// the badge, and a TTY check standing in for idle detection.
package terminal

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"tableflip.dev/bedtime/pkg/reminder"
)

// Notifier prints notifications and, when interactive, offers the actions
// through a select prompt. Chosen action indexes arrive on Actions.
type Notifier struct {
	Out         io.Writer
	In          io.Reader
	Interactive bool
	Now         func() time.Time

	once      sync.Once
	mu        sync.Mutex
	prompting bool
	actions   chan int
}

// Actions delivers the index of every action the user picked.
func (n *Notifier) Actions() <-chan int {
	n.init()
	return n.actions
}

func (n *Notifier) init() {
	n.once.Do(func() {
		n.actions = make(chan int, 1)
	})
}

// Notify prints n and starts a prompt for its actions unless one is already
// open. It never blocks on the user.
func (n *Notifier) Notify(ctx context.Context, note reminder.Notification) error {
	n.init()
	out := n.Out
	if out == nil {
		out = color.Output
	}

	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	title := color.New(color.Bold, color.FgCyan)
	fmt.Fprintf(out, "%s %s\n", title.Sprint("🌙 "+note.Title), color.New(color.Faint).Sprint(now().Format("15:04")))
	fmt.Fprintln(out, note.Message)

	if !n.Interactive || len(note.Actions) == 0 {
		return nil
	}

	n.mu.Lock()
	if n.prompting {
		n.mu.Unlock()
		return nil
	}
	n.prompting = true
	n.mu.Unlock()

	go func() {
		defer func() {
			n.mu.Lock()
			n.prompting = false
			n.mu.Unlock()
		}()
		i, err := n.prompt(note)
		if err != nil {
			return
		}
		select {
		case n.actions <- i:
		case <-ctx.Done():
		}
	}()
	return nil
}

func (n *Notifier) prompt(note reminder.Notification) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ . | cyan }}",
		Inactive: "   {{ . }}",
		Selected: "➜  {{ . | cyan }}",
	}
	prompt := promptui.Select{
		HideHelp:  true,
		Label:     note.Title,
		Items:     note.Actions,
		Templates: templates,
		Size:      len(note.Actions),
	}
	if n.In != nil {
		prompt.Stdin = io.NopCloser(n.In)
	}
	if n.Out != nil {
		prompt.Stdout = NopCloser(n.Out)
	}
	i, _, err := prompt.Run()
	return i, err
}

// NopCloser returns a WriteCloser with a no-op Close method wrapping
// the provided Writer w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
