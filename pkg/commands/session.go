package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/bedtime/pkg/commands/options"
	"tableflip.dev/bedtime/pkg/runner/session"
)

func addSleep(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "sleep",
		Short: "Start logging a night of sleep",
		Example: `
bedtime sleep
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			s := session.Sleep{Service: svc, JSON: oo.JSON, Out: cmd.OutOrStdout()}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addWake(topLevel *cobra.Command) {
	wo := &options.WakeOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "wake",
		Short: "Finish the night and show how it went",
		Example: `
bedtime wake
bedtime wake --mood tired
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			mood, err := wo.GetMood()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, _, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			w := session.Wake{Service: svc, Mood: mood, JSON: oo.JSON, Out: cmd.OutOrStdout()}
			return oo.HandleError(w.Do(cmd.Context()))
		},
	}

	options.AddWakeArgs(cmd, wo)
	options.AddOutputArg(cmd, oo)
	_ = cmd.RegisterFlagCompletionFunc("mood", moodCompletions)

	topLevel.AddCommand(cmd)
}

func addCancel(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Discard the open sleep session without logging it",
		Example: `
bedtime cancel
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			c := session.Cancel{Service: svc, Out: cmd.OutOrStdout()}
			return c.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
