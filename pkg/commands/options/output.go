package options

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/bedtime/pkg/printers"
	"tableflip.dev/bedtime/pkg/reminder"
)

// OutputOptions
type OutputOptions struct {
	JSON bool

	cmd *cobra.Command
}

func AddOutputArg(cmd *cobra.Command, oo *OutputOptions) {
	oo.cmd = cmd
	cmd.Flags().BoolVar(&oo.JSON, "json", false,
		"Output as JSON.")
}

type errorOutput struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HandleError renders err as JSON on the command's output when --json is set
// and swallows it; otherwise err is returned as is.
func (oo *OutputOptions) HandleError(err error) error {
	if err == nil || !oo.JSON {
		return err
	}
	out := errorOutput{Error: err.Error()}
	if errors.Is(err, reminder.ErrRemindersOff) {
		out.Code = "reminders_off"
	}
	if oo.cmd != nil {
		return printers.JSON(oo.cmd.OutOrStdout(), out)
	}
	return printers.JSON(nil, out)
}
