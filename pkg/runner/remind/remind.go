// Package remind turns bedtime reminders on or off and skips tonight's.
package remind

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/bedtime/pkg/app"
	"tableflip.dev/bedtime/pkg/printers"
	"tableflip.dev/bedtime/pkg/reminder"
)

// Action is what to do with reminders.
type Action string

const (
	On   Action = "on"
	Off  Action = "off"
	Skip Action = "skip"
)

// ParseAction validates a remind subcommand argument.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case On, Off, Skip:
		return a, nil
	}
	return "", fmt.Errorf("remind: unknown action %q, want on, off or skip", s)
}

type Remind struct {
	Service *app.Service
	Action  Action
	JSON    bool
	Out     io.Writer
}

func (r *Remind) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("remind: no service")
	}
	var (
		st  reminder.State
		err error
	)
	switch r.Action {
	case On:
		st, err = r.Service.SetReminders(ctx, true)
	case Off:
		st, err = r.Service.SetReminders(ctx, false)
	case Skip:
		st, err = r.Service.Skip(ctx)
	default:
		return fmt.Errorf("remind: unknown action %q", r.Action)
	}
	if err != nil {
		return err
	}
	if r.JSON {
		return printers.JSON(r.Out, st)
	}
	w := r.Out
	if w == nil {
		w = color.Output
	}
	switch {
	case st.SkipUntil != nil:
		_, _ = fmt.Fprintf(w, "Reminder skipped until %s.\n", st.SkipUntil.Format("15:04"))
	case st.Enabled:
		_, _ = fmt.Fprintln(w, "Bedtime reminders on. Run `bedtime daemon` to receive them.")
	default:
		_, _ = fmt.Fprintln(w, "Bedtime reminders off.")
	}
	return nil
}
