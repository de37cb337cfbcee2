package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/bedtime/pkg/commands/options"
	"tableflip.dev/bedtime/pkg/runner/plan"
)

func addPlan(topLevel *cobra.Command) {
	po := &options.PlanOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "plan [HH:MM]",
		Short: "Suggest bedtimes or wake times that end on a full sleep cycle",
		Example: `
bedtime plan --wake 07:00
bedtime plan --sleep 23:15
bedtime plan --wake 06:30 --latency 20
bedtime plan --wake 07:00 --use 2
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			mode, target, err := po.GetMode(args)
			if err != nil {
				return oo.HandleError(err)
			}
			svc, _, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			p := plan.Plan{
				Service: svc,
				Mode:    mode,
				Target:  target,
				Latency: po.GetLatency(cmd),
				Use:     po.Use,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(p.Do(cmd.Context()))
		},
	}

	options.AddPlanArgs(cmd, po)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
