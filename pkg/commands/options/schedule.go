package options

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/bedtime/pkg/schedule"
)

// ScheduleOptions
type ScheduleOptions struct {
	Bedtime string
	Wake    string
	Latency int
	Grace   int
	Scope   string
}

func AddScheduleArgs(cmd *cobra.Command, o *ScheduleOptions) {
	cmd.Flags().StringVar(&o.Bedtime, "bedtime", "",
		"Bedtime, HH:MM.")
	cmd.Flags().StringVar(&o.Wake, "wake", "",
		"Wake time, HH:MM.")
	cmd.Flags().IntVar(&o.Latency, "latency", schedule.DefaultLatency,
		"Minutes it takes to fall asleep.")
	cmd.Flags().IntVar(&o.Grace, "grace", schedule.DefaultGraceMinutes,
		base.Wrap80("Minutes after bedtime before the reminder fires."))
	cmd.Flags().StringVar(&o.Scope, "scope", string(schedule.ScopeEveryday),
		base.Wrap80(`Where the change applies: "everyday" or "tomorrow" (a one-day override).`))
}

// GetPatch builds a patch from the flags that were given.
func (o *ScheduleOptions) GetPatch(cmd *cobra.Command) schedule.Patch {
	var p schedule.Patch
	f := cmd.Flags()
	if f.Changed("bedtime") {
		v := o.Bedtime
		p.Bedtime = &v
	}
	if f.Changed("wake") {
		v := o.Wake
		p.WakeTime = &v
	}
	if f.Changed("latency") {
		v := o.Latency
		p.SleepLatencyMinutes = &v
	}
	if f.Changed("grace") {
		v := o.Grace
		p.GraceMinutes = &v
	}
	return p
}

func (o *ScheduleOptions) GetScope() (schedule.Scope, error) {
	return schedule.ParseScope(o.Scope)
}
