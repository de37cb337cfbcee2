package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/bedtime/pkg/session"
)

// WakeOptions
type WakeOptions struct {
	Mood string
}

func AddWakeArgs(cmd *cobra.Command, o *WakeOptions) {
	cmd.Flags().StringVarP(&o.Mood, "mood", "m", "",
		`How you feel: "refreshed", "okay" or "tired".`)
}

func (o *WakeOptions) GetMood() (*session.Mood, error) {
	return session.ParseMood(o.Mood)
}
