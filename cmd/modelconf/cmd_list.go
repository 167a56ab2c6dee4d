package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/nulzo/model-config-kit/internal/config"
	"github.com/nulzo/model-config-kit/internal/configstore"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured providers and their models",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	store := configstore.NewStore(cfg.Settings.Path)
	text, err := store.ReadDocument()
	if err != nil {
		return err
	}
	providers, err := configstore.Providers(text)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(providers) == 0 {
		fmt.Fprintf(out, "No providers configured in %s\n", cfg.Settings.Path)
		return nil
	}

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := providers[name]
		fmt.Fprintf(out, "%s  (%s)\n", name, entry.APIURL)
		for _, m := range entry.AvailableModels {
			fmt.Fprintf(out, "  %-40s max_tokens=%-7d tools=%-5t images=%-5t\n",
				m.Name, m.MaxTokens, m.Capabilities.Tools, m.Capabilities.Images)
		}
	}
	return nil
}
