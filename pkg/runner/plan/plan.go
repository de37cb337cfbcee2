// Package plan prints cycle-aligned bedtime or wake-up suggestions.
package plan

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/bedtime/pkg/app"
	"tableflip.dev/bedtime/pkg/planner"
	"tableflip.dev/bedtime/pkg/printers"
	"tableflip.dev/bedtime/pkg/schedule"
)

type Plan struct {
	Service *app.Service
	Mode    planner.Mode
	Target  string
	Latency *int
	// Use saves the Nth suggestion, counting from 1, as the schedule.
	Use  int
	JSON bool
	Out  io.Writer
}

type result struct {
	Mode        planner.Mode         `json:"mode"`
	Target      string               `json:"target"`
	Suggestions []planner.Suggestion `json:"suggestions"`
	Schedule    *schedule.Schedule   `json:"schedule,omitempty"`
}

func (p *Plan) Do(ctx context.Context) error {
	if p.Service == nil {
		return errors.New("plan: no service")
	}
	s, err := p.Service.Plan(ctx, p.Mode, p.Target, p.Latency)
	if err != nil {
		return err
	}
	res := result{Mode: p.Mode, Target: p.Target, Suggestions: s}
	if p.Use != 0 {
		if p.Use < 1 || p.Use > len(s) {
			return fmt.Errorf("plan: --use must be between 1 and %d", len(s))
		}
		sched, err := p.Service.UsePlan(ctx, p.Mode, p.Target, s[p.Use-1])
		if err != nil {
			return err
		}
		res.Schedule = &sched
	}
	if p.JSON {
		return printers.JSON(p.Out, res)
	}
	pp := printers.PrettyPrint{Out: p.Out}
	pp.Suggestions(p.Mode, p.Target, s)
	if res.Schedule != nil {
		pp.PlanUsed(*res.Schedule)
	}
	return nil
}
