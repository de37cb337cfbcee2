package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/bedtime/pkg/commands/options"
	"tableflip.dev/bedtime/pkg/runner/schedule"
)

func addSchedule(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show or change the bedtime schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addScheduleShow(cmd)
	addScheduleSet(cmd)

	topLevel.AddCommand(cmd)
}

func addScheduleShow(parent *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the saved schedule, any override for tomorrow and the one in effect",
		Example: `
bedtime schedule show
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			s := schedule.Show{Service: svc, JSON: oo.JSON, Out: cmd.OutOrStdout()}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addScheduleSet(parent *cobra.Command) {
	so := &options.ScheduleOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the schedule every day, or just for tomorrow",
		Example: `
bedtime schedule set --bedtime 23:00 --wake 07:30
bedtime schedule set --wake 06:00 --scope tomorrow
bedtime schedule set --latency 20 --grace 10
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			scope, err := so.GetScope()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, _, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			s := schedule.Set{
				Service: svc,
				Patch:   so.GetPatch(cmd),
				Scope:   scope,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddScheduleArgs(cmd, so)
	options.AddOutputArg(cmd, oo)
	_ = cmd.RegisterFlagCompletionFunc("scope", scopeCompletions)

	parent.AddCommand(cmd)
}
