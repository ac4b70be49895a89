// Package check implements the check command, the CI entry point that runs
// one full pass of the CDN update workflow.
package check

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alan/cdn-updater/internal/config"
	"github.com/alan/cdn-updater/internal/gh"
	"github.com/alan/cdn-updater/internal/git"
	"github.com/alan/cdn-updater/internal/github"
	"github.com/alan/cdn-updater/internal/run"
	"github.com/alan/cdn-updater/internal/update"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates and returns the check command
func NewCheckCmd(globalConfigFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check for a new upstream release and publish a PR or issue",
		Long: `Check whether a newer Plotly.js bundle has been published.

If the embedded CDN URL is current, nothing happens. If a newer reachable
bundle exists, the URL constant is rewritten and a pull request is opened.
If the new bundle URL does not resolve, an issue is filed instead. Existing
branches, pull requests, and open issues for the same version abort the run.

Requires REPO, GITHUB_WORKSPACE, and GITHUB_TOKEN environment variables.`,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return runCheck(cobraCmd, *globalConfigFile, loadConfig)
		},
	}
}

func runCheck(cobraCmd *cobra.Command, configFile string, loadConfig func(string) (*config.Config, error)) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	token, err := config.GitHubToken()
	if err != nil {
		return err
	}

	ctx := cobraCmd.Context()
	tags, err := github.NewClient(ctx, token, cfg.UpstreamRepo)
	if err != nil {
		return err
	}

	runner := run.ExecRunner{Dir: cfg.Workspace}
	workflow := &update.Workflow{
		Config: cfg,
		Tags:   tags,
		HTTP:   http.DefaultClient,
		GH:     gh.CLI{Runner: runner, Repo: cfg.Repo},
		Git:    git.CLI{Runner: runner},
	}

	outcome, err := workflow.Run(ctx)
	if err != nil {
		return err
	}

	switch outcome {
	case update.OutcomeUpToDate:
		slog.Info("CDN URL is up to date")
	case update.OutcomePRCreated:
		slog.Info("Opened pull request for CDN update")
	case update.OutcomeIssueCreated:
		slog.Info("Filed issue for unreachable CDN URL")
	case update.OutcomeIssueClosed:
		slog.Info("Unreachable CDN URL already triaged, nothing to do")
	}

	return nil
}
