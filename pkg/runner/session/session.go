// Package session opens and closes sleep sessions from the command line.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/bedtime/pkg/app"
	"tableflip.dev/bedtime/pkg/printers"
	sleeplog "tableflip.dev/bedtime/pkg/session"
)

// Sleep opens a session.
type Sleep struct {
	Service *app.Service
	JSON    bool
	Out     io.Writer
}

func (s *Sleep) Do(ctx context.Context) error {
	if s.Service == nil {
		return errors.New("sleep: no service")
	}
	at, err := s.Service.Sleep(ctx)
	if err != nil {
		return err
	}
	if s.JSON {
		return printers.JSON(s.Out, map[string]time.Time{"sleepTime": at})
	}
	_, _ = fmt.Fprintf(out(s.Out), "Good night. Asleep from %s.\n", at.Format("15:04"))
	if tip, ok, err := s.Service.Tip(ctx); err == nil && ok {
		pp := printers.PrettyPrint{Out: s.Out}
		pp.Tip(tip)
	}
	return nil
}

// Wake closes the open session and prints its summary.
type Wake struct {
	Service *app.Service
	Mood    *sleeplog.Mood
	JSON    bool
	Out     io.Writer
}

func (w *Wake) Do(ctx context.Context) error {
	if w.Service == nil {
		return errors.New("wake: no service")
	}
	sum, err := w.Service.Wake(ctx, w.Mood)
	if err != nil {
		return err
	}
	if sum == nil {
		return errors.New("wake: no sleep session is open")
	}
	if w.JSON {
		return printers.JSON(w.Out, sum)
	}
	pp := printers.PrettyPrint{Out: w.Out}
	pp.Summary(sum)
	return nil
}

// Cancel discards the open session.
type Cancel struct {
	Service *app.Service
	Out     io.Writer
}

func (c *Cancel) Do(ctx context.Context) error {
	if c.Service == nil {
		return errors.New("cancel: no service")
	}
	ok, err := c.Service.Cancel(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("cancel: no sleep session is open")
	}
	_, _ = fmt.Fprintln(out(c.Out), "Sleep session discarded.")
	return nil
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
