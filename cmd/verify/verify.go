// Package verify implements the verify command for checking that a bundle
// URL resolves.
package verify

import (
	"fmt"
	"net/http"

	"github.com/alan/cdn-updater/internal/cdn"
	"github.com/alan/cdn-updater/internal/config"
	"github.com/alan/cdn-updater/internal/github"
	"github.com/alan/cdn-updater/internal/version"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates and returns the verify command
func NewVerifyCmd(globalConfigFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [url]",
		Short: "Check that a CDN URL resolves",
		Long: `Perform a HEAD request against the given URL and exit 0 only when it
answers 200. Without an argument, the CDN URL of the latest upstream
version is checked (this needs GITHUB_TOKEN).`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*globalConfigFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			url, err := resolveTarget(cobraCmd, cfg, args)
			if err != nil {
				return err
			}

			reachable, err := cdn.Verify(cobraCmd.Context(), http.DefaultClient, url)
			if err != nil {
				return err
			}
			if !reachable {
				return fmt.Errorf("not reachable: %s", url)
			}

			fmt.Println("reachable:", url)
			return nil
		},
	}
}

// resolveTarget picks the URL to check: the argument if given, otherwise the
// CDN URL of the latest upstream version.
func resolveTarget(cobraCmd *cobra.Command, cfg *config.Config, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	token, err := config.GitHubToken()
	if err != nil {
		return "", err
	}

	tags, err := github.NewClient(cobraCmd.Context(), token, cfg.UpstreamRepo)
	if err != nil {
		return "", err
	}

	resolved, err := version.Latest(tags)
	if err != nil {
		return "", err
	}

	return cdn.URL(cfg.CDNTemplate, resolved), nil
}
