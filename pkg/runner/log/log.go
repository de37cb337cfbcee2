// Package log prints the sleep log and the weekly chart.
package log

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/bedtime/pkg/app"
	"tableflip.dev/bedtime/pkg/printers"
	"tableflip.dev/bedtime/pkg/timeutil"
)

type Log struct {
	Service *app.Service
	Window  timeutil.Window
	// Chart limits output to the seven-day chart.
	Chart bool
	JSON  bool
	Out   io.Writer
}

func (l *Log) Do(ctx context.Context) error {
	if l.Service == nil {
		return errors.New("log: no service")
	}
	r, err := l.Service.Report(ctx, l.Window)
	if err != nil {
		return err
	}
	if l.JSON {
		return printers.JSON(l.Out, r)
	}
	pp := printers.PrettyPrint{Out: l.Out}
	pp.Week(r.Week, r.AverageHours)
	if !l.Chart {
		pp.Nights(r.Nights)
	}
	return nil
}
