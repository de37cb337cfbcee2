// Package key provides CLI helpers to display the symbol legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/bedtime/pkg/glyph"
)

// Key prints a legend of chart marks and moods.
type Key struct {
	Out io.Writer
}

// Do renders the mark and mood keys.
func (k *Key) Do(ctx context.Context) error {
	w := k.out()
	_, _ = fmt.Fprintln(w, "")
	k.Key(ctx, glyph.DefaultGlyphs(), false)
	_, _ = fmt.Fprintln(w, "")
	k.Key(ctx, glyph.DefaultGlyphs(), true)
	_, _ = fmt.Fprintln(w, "")
	return nil
}

// Key renders a glyph table; when mood is true, moods are shown.
func (k *Key) Key(_ context.Context, glyfs []glyph.Glyph, mood bool) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	if mood {
		tbl.AddRow(bold.Sprint("Moods"), bold.Sprint("Meaning"))
	} else {
		tbl.AddRow(bold.Sprint("Marks"), bold.Sprint("Meaning"))
	}
	for _, v := range glyfs {
		if mood == v.Mood {
			tbl.AddRow(v.Symbol, v.Meaning)
		}
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(k.out(), tbl)
}

func (k *Key) out() io.Writer {
	if k.Out == nil {
		return color.Output
	}
	return k.Out
}
