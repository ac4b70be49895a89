// Package latest implements the latest command for printing the newest
// upstream version.
package latest

import (
	"fmt"

	"github.com/alan/cdn-updater/internal/config"
	"github.com/alan/cdn-updater/internal/github"
	"github.com/alan/cdn-updater/internal/version"
	"github.com/spf13/cobra"
)

// NewLatestCmd creates and returns the latest command
func NewLatestCmd(globalConfigFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Print the latest upstream Plotly.js version",
		Long: `Resolve the newest semantic version among the upstream repository tags
and print it. No repository state is touched.

Requires GITHUB_TOKEN environment variable to be set.`,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*globalConfigFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			token, err := config.GitHubToken()
			if err != nil {
				return err
			}

			tags, err := github.NewClient(cobraCmd.Context(), token, cfg.UpstreamRepo)
			if err != nil {
				return err
			}

			resolved, err := version.Latest(tags)
			if err != nil {
				return err
			}

			fmt.Println(resolved)
			return nil
		},
	}
}
