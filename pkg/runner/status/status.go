// Package status prints the reminder and session state right now.
package status

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/bedtime/pkg/app"
	"tableflip.dev/bedtime/pkg/printers"
)

type Status struct {
	Service *app.Service
	JSON    bool
	Out     io.Writer
}

func (s *Status) Do(ctx context.Context) error {
	if s.Service == nil {
		return errors.New("status: no service")
	}
	r, err := s.Service.Status(ctx)
	if err != nil {
		return err
	}
	if s.JSON {
		return printers.JSON(s.Out, r)
	}
	pp := printers.PrettyPrint{Out: s.Out}
	pp.Status(r)
	return nil
}
