package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/bedtime/pkg/commands/options"
	"tableflip.dev/bedtime/pkg/runner/tip"
)

func addTip(topLevel *cobra.Command) {
	var anyTip bool
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "tip",
		Short: "Show today's sleep tip",
		Example: `
bedtime tip
bedtime tip --any
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			t := tip.Tip{Service: svc, Any: anyTip, JSON: oo.JSON, Out: cmd.OutOrStdout()}
			return oo.HandleError(t.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVarP(&anyTip, "any", "a", false, "Show a tip even if today's was already shown.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
