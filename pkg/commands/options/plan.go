package options

import (
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/bedtime/pkg/planner"
)

// PlanOptions
type PlanOptions struct {
	Wake    string
	Sleep   string
	Latency int
	Use     int
}

func AddPlanArgs(cmd *cobra.Command, o *PlanOptions) {
	cmd.Flags().StringVar(&o.Wake, "wake", "",
		base.Wrap80("Wake up at this time (HH:MM) and suggest bedtimes."))
	cmd.Flags().StringVar(&o.Sleep, "sleep", "",
		base.Wrap80("Fall asleep at this time (HH:MM) and suggest wake times."))
	cmd.Flags().IntVar(&o.Latency, "latency", planner.DefaultLatency,
		base.Wrap80("Minutes it takes to fall asleep. Defaults to the saved schedule."))
	cmd.Flags().IntVar(&o.Use, "use", 0,
		base.Wrap80("Save the Nth suggestion as the everyday schedule and turn reminders on."))
}

// GetMode returns the planning mode and its target time. A positional arg
// stands in for --wake.
func (o *PlanOptions) GetMode(args []string) (planner.Mode, string, error) {
	switch {
	case o.Wake != "" && o.Sleep != "":
		return "", "", errors.New("use either --wake or --sleep, not both")
	case o.Sleep != "":
		return planner.ModeSleep, o.Sleep, nil
	case o.Wake != "":
		return planner.ModeWake, o.Wake, nil
	case len(args) == 1:
		return planner.ModeWake, args[0], nil
	}
	return "", "", errors.New("a time is required, e.g. --wake 07:00 or --sleep 23:00")
}

// GetLatency returns the latency only when the flag was given.
func (o *PlanOptions) GetLatency(cmd *cobra.Command) *int {
	if !cmd.Flags().Changed("latency") {
		return nil
	}
	l := o.Latency
	return &l
}
