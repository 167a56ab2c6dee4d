package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nulzo/model-config-kit/internal/platform/logger"
)

// version is set at build time via -ldflags.
var version = "v0.0.0"

var rootCmd = &cobra.Command{
	Use:   "modelconf",
	Short: "Manage AI provider entries in a JSONC settings document",
	Long: "modelconf keeps the openai_compatible provider section of a settings\n" +
		"document in step with live provider model listings, resolving per-model\n" +
		"capabilities and token limits without disturbing hand-written comments\n" +
		"or formatting.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = version
}

func main() {
	logger.Initialize(logger.DefaultConfig())
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
