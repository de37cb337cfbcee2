package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/bedtime/pkg/commands/options"
	"tableflip.dev/bedtime/pkg/runner/remind"
)

func addRemind(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "remind on|off|skip",
		Short: "Turn bedtime reminders on or off, or skip tonight's for 15 minutes",
		Example: `
bedtime remind on
bedtime remind skip
bedtime remind off
`,
		ValidArgs: []string{string(remind.On), string(remind.Off), string(remind.Skip)},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			action, err := remind.ParseAction(args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			svc, _, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			r := remind.Remind{Service: svc, Action: action, JSON: oo.JSON, Out: cmd.OutOrStdout()}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
