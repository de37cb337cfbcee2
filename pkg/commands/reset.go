package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/bedtime/pkg/commands/options"
	"tableflip.dev/bedtime/pkg/runner/reset"
)

func addReset(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase the schedule, reminder settings and sleep log",
		Example: `
bedtime reset
bedtime reset --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			r := reset.Reset{Service: svc, Yes: co.Yes, In: os.Stdin, Out: cmd.OutOrStdout()}
			return r.Do(cmd.Context())
		},
	}

	options.AddConfirmArgs(cmd, co)
	topLevel.AddCommand(cmd)
}
