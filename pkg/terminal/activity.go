package terminal

import (
	"context"

	"github.com/mattn/go-isatty"
)

// Activity treats an attached interactive terminal as an active user. There
// is no idle detection beyond that; AssumeActive forces the answer.
type Activity struct {
	Fd           uintptr
	AssumeActive bool
}

// Active reports whether reminders should be shown now.
func (a Activity) Active(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	if a.AssumeActive {
		return true
	}
	return isatty.IsTerminal(a.Fd) || isatty.IsCygwinTerminal(a.Fd)
}
