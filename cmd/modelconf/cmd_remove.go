package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nulzo/model-config-kit/internal/config"
	"github.com/nulzo/model-config-kit/internal/configstore"
	"github.com/nulzo/model-config-kit/internal/core/services"
	"github.com/nulzo/model-config-kit/internal/platform/logger"
)

var removeCmd = &cobra.Command{
	Use:   "remove <provider>",
	Short: "Remove a provider entry from settings",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	store := configstore.NewStore(cfg.Settings.Path)
	svc := services.NewSyncService(store, nil, cfg.Settings.DefaultMaxTokens, logger.Get())
	if err := svc.RemoveProvider(args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed provider %q from %s\n", args[0], cfg.Settings.Path)
	return nil
}
