// Package tip prints a sleep tip.
package tip

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/bedtime/pkg/app"
	"tableflip.dev/bedtime/pkg/printers"
)

// Tip prints today's tip. With Any set it prints a random tip even when
// today's was already shown, without recording it.
type Tip struct {
	Service *app.Service
	Any     bool
	JSON    bool
	Out     io.Writer
}

func (t *Tip) Do(ctx context.Context) error {
	if t.Service == nil {
		return errors.New("tip: no service")
	}
	tip, ok, err := t.Service.Tip(ctx)
	if err != nil {
		return err
	}
	if !ok && t.Any {
		tip, ok = t.Service.Tips().Any(), true
	}
	if t.JSON {
		return printers.JSON(t.Out, map[string]any{"tip": tip, "shown": ok})
	}
	if !ok {
		return nil
	}
	pp := printers.PrettyPrint{Out: t.Out}
	pp.Tip(tip)
	return nil
}
