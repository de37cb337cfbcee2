package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/bedtime/pkg/commands/options"
	"tableflip.dev/bedtime/pkg/runner/log"
)

func addLog(topLevel *cobra.Command) {
	lo := &options.LogOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "View the sleep log",
		Example: `
bedtime log
bedtime log --window 3d
bedtime log --chart
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			window, err := lo.GetWindow()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, _, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			l := log.Log{
				Service: svc,
				Window:  window,
				Chart:   lo.Chart,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddLogArgs(cmd, lo)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
