// Package schedule shows and edits the bedtime schedule.
package schedule

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/bedtime/pkg/app"
	"tableflip.dev/bedtime/pkg/printers"
	sched "tableflip.dev/bedtime/pkg/schedule"
)

// Show prints the saved and effective schedules.
type Show struct {
	Service *app.Service
	JSON    bool
	Out     io.Writer
}

func (s *Show) Do(ctx context.Context) error {
	if s.Service == nil {
		return errors.New("schedule: no service")
	}
	v, err := s.Service.Schedule(ctx)
	if err != nil {
		return err
	}
	if s.JSON {
		return printers.JSON(s.Out, v)
	}
	pp := printers.PrettyPrint{Out: s.Out}
	pp.Schedule(v)
	return nil
}

// Set applies a partial update.
type Set struct {
	Service *app.Service
	Patch   sched.Patch
	Scope   sched.Scope
	JSON    bool
	Out     io.Writer
}

func (s *Set) Do(ctx context.Context) error {
	if s.Service == nil {
		return errors.New("schedule: no service")
	}
	next, err := s.Service.UpdateSchedule(ctx, s.Patch, s.Scope)
	if err != nil {
		return err
	}
	if s.JSON {
		return printers.JSON(s.Out, next)
	}
	pp := printers.PrettyPrint{Out: s.Out}
	pp.Updated(next, s.Scope)
	return nil
}
