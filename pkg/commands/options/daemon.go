package options

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
)

// DaemonOptions
type DaemonOptions struct {
	MetricsAddr  string
	AssumeActive bool
}

func AddDaemonArgs(cmd *cobra.Command, o *DaemonOptions) {
	cmd.Flags().StringVar(&o.MetricsAddr, "metrics-addr", "",
		base.Wrap80("Serve Prometheus metrics on this address, e.g. :9090. Overrides metrics_addr from the config file."))
	cmd.Flags().BoolVar(&o.AssumeActive, "assume-active", false,
		base.Wrap80("Show reminders even when not attached to a terminal."))
}
