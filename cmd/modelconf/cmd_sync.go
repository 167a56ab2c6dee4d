package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nulzo/model-config-kit/internal/adapters/providers/openai"
	"github.com/nulzo/model-config-kit/internal/adapters/registry"
	"github.com/nulzo/model-config-kit/internal/config"
	"github.com/nulzo/model-config-kit/internal/configstore"
	"github.com/nulzo/model-config-kit/internal/core/services"
	"github.com/nulzo/model-config-kit/internal/platform/logger"
)

var syncFlags struct {
	apiURL string
	apiKey string
}

var syncCmd = &cobra.Command{
	Use:   "sync <provider>",
	Short: "Fetch a provider's models and write resolved entries into settings",
	Args:  cobra.ExactArgs(1),
	RunE:  runSync,
}

func init() {
	f := syncCmd.Flags()
	f.StringVar(&syncFlags.apiURL, "api-url", "", "Provider endpoint (overrides configured value)")
	f.StringVar(&syncFlags.apiKey, "api-key", "", "Bearer token (overrides configured value)")
}

func runSync(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	apiURL, apiKey := syncFlags.apiURL, syncFlags.apiKey
	if provider, ok := cfg.Provider(name); ok {
		if apiURL == "" {
			apiURL = provider.APIURL
		}
		if apiKey == "" {
			apiKey = provider.APIKey
		}
	}
	if apiURL == "" {
		return fmt.Errorf("provider %q is not configured; pass --api-url", name)
	}

	// One cache per invocation, handed to the resolver explicitly.
	cache := registry.NewCache(registry.NewClient(cfg.Registry.URL, nil))
	resolver := services.NewResolver(cache, logger.Get())
	store := configstore.NewStore(cfg.Settings.Path)
	svc := services.NewSyncService(store, resolver, cfg.Settings.DefaultMaxTokens, logger.Get())

	source := openai.NewAdapter(name, apiURL, apiKey)
	if err := svc.SyncProvider(cmd.Context(), source); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Synced provider %q into %s\n", name, cfg.Settings.Path)
	return nil
}
