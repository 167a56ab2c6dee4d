package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	goversion "github.com/hashicorp/go-version"
	"github.com/spf13/cobra"
)

const releaseURL = "https://api.github.com/repos/nulzo/model-config-kit/releases/latest"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and check for a newer release",
	Args:  cobra.NoArgs,
	Run:   runVersion,
}

type gitHubRelease struct {
	TagName string `json:"tag_name"`
}

func runVersion(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "modelconf %s\n", version)

	if latest := latestRelease(); latest != "" {
		current, err := goversion.NewVersion(version)
		if err != nil {
			return
		}
		remote, err := goversion.NewVersion(latest)
		if err != nil {
			return
		}
		if current.LessThan(remote) {
			fmt.Fprintf(out, "A newer release is available: %s\n", latest)
		}
	}
}

// latestRelease best-effort queries GitHub; any failure returns "".
func latestRelease() string {
	client := http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(releaseURL)
	if err != nil {
		return ""
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return ""
	}
	var release gitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return ""
	}
	return release.TagName
}
