package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/bedtime/pkg/commands/options"
	"tableflip.dev/bedtime/pkg/logging"
	"tableflip.dev/bedtime/pkg/runner/daemon"
)

func addDaemon(topLevel *cobra.Command) {
	do := &options.DaemonOptions{}

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the bedtime reminder in the foreground",
		Long: `Keeps tonight's reminder armed, prints a notification when bedtime has
passed and offers "Going to sleep" or "Skip 15 min". Changes made with other
bedtime commands are picked up while it runs. Stop it with Ctrl-C.`,
		Example: `
bedtime remind on
bedtime daemon
bedtime daemon --metrics-addr :9090
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, cfg, err := loadService()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			addr := cfg.MetricsAddr
			if cmd.Flags().Changed("metrics-addr") {
				addr = do.MetricsAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d := daemon.Daemon{
				Service:      svc,
				Logger:       logger,
				MetricsAddr:  addr,
				AssumeActive: do.AssumeActive,
				In:           os.Stdin,
				Out:          cmd.OutOrStdout(),
			}
			return d.Do(ctx)
		},
	}

	options.AddDaemonArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
