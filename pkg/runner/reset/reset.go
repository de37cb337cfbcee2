// Package reset erases every stored setting and the sleep log.
package reset

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"tableflip.dev/bedtime/pkg/app"
)

type Reset struct {
	Service *app.Service
	// Yes skips the confirmation prompt.
	Yes bool
	In  io.ReadCloser
	Out io.Writer
}

func (r *Reset) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("reset: no service")
	}
	if !r.Yes {
		prompt := promptui.Prompt{
			Label:     "Erase the schedule, reminders and sleep log",
			IsConfirm: true,
			Stdin:     r.In,
		}
		if _, err := prompt.Run(); err != nil {
			if errors.Is(err, promptui.ErrAbort) {
				return nil
			}
			return err
		}
	}
	if err := r.Service.Reset(ctx); err != nil {
		return err
	}
	w := r.Out
	if w == nil {
		w = color.Output
	}
	_, _ = fmt.Fprintln(w, "All bedtime data erased.")
	return nil
}
