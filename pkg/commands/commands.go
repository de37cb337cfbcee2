package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/bedtime/pkg/app"
	"tableflip.dev/bedtime/pkg/config"
	"tableflip.dev/bedtime/pkg/store"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "bedtime",
		Short: base.Wrap80("Plan bedtimes around sleep cycles, get reminded when it is time, and keep a sleep log."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addPlan(topLevel)
	addSleep(topLevel)
	addWake(topLevel)
	addCancel(topLevel)
	addStatus(topLevel)
	addSchedule(topLevel)
	addRemind(topLevel)
	addLog(topLevel)
	addTip(topLevel)
	addKey(topLevel)
	addReset(topLevel)
	addDaemon(topLevel)
	addUI(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
	addCompletions(topLevel)
}

// loadService reads the config and opens the store it points at.
func loadService() (*app.Service, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	return &app.Service{Store: store.New(p)}, cfg, nil
}
