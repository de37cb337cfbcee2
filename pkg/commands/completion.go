package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/bedtime/pkg/schedule"
	"tableflip.dev/bedtime/pkg/session"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(bedtime completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(bedtime completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func moodCompletions(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	moods := session.AllMoods()
	out := make([]string, 0, len(moods))
	for _, m := range moods {
		out = append(out, string(m))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func scopeCompletions(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{string(schedule.ScopeEveryday), string(schedule.ScopeTomorrow)}, cobra.ShellCompDirectiveNoFileComp
}
