package options

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/bedtime/pkg/timeutil"
)

// LogOptions
type LogOptions struct {
	Window string
	Chart  bool
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.Flags().StringVarP(&o.Window, "window", "w", timeutil.DefaultWindow.String(),
		base.Wrap80("How far back to look, e.g. 3d, 1w, 2w. At most 30 days."))
	cmd.Flags().BoolVarP(&o.Chart, "chart", "c", false,
		"Show only the weekly chart.")
}

func (o *LogOptions) GetWindow() (timeutil.Window, error) {
	return timeutil.ParseWindow(o.Window)
}
