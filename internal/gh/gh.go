// Package gh wraps the GitHub CLI subcommands the bot shells out to for
// branch, pull request, and issue operations on the target repository.
package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alan/cdn-updater/internal/run"
)

// Issue is the subset of gh issue list JSON output the dedupe check reads.
type Issue struct {
	Number int    `json:"number"`
	State  string `json:"state"`
}

// CLI issues gh commands against a single target repository.
type CLI struct {
	Runner run.Runner
	Repo   string
}

// BranchExists reports whether the branch exists on the target repository.
// gh exiting nonzero with "HTTP 404" on stderr means the branch is absent;
// any other failure is an error.
func (c CLI) BranchExists(ctx context.Context, branch string) (bool, error) {
	result, err := c.Runner.Run(ctx, "gh", "api", fmt.Sprintf("repos/%s/branches/%s", c.Repo, branch), "--silent")
	if err != nil {
		return false, fmt.Errorf("failed to run gh api: %w", err)
	}

	if result.ExitCode == 0 {
		return true, nil
	}

	stderr := string(result.Stderr)
	if !strings.Contains(stderr, "HTTP 404") {
		return false, fmt.Errorf("unexpected gh api error: %s", stderr)
	}

	return false, nil
}

// PRExistsForBranch reports whether any pull request, in any state, has the
// branch as its head.
func (c CLI) PRExistsForBranch(ctx context.Context, branch string) (bool, error) {
	result, err := c.Runner.Run(ctx, "gh", "pr", "list", "-R", c.Repo, "-H", branch, "--state", "all")
	if err != nil {
		return false, fmt.Errorf("failed to run gh pr list: %w", err)
	}
	if result.ExitCode != 0 {
		return false, fmt.Errorf("gh pr list failed: %s", result.Stderr)
	}

	return len(strings.TrimSpace(string(result.Stdout))) > 0, nil
}

// CreatePR opens a pull request from head into base and returns its URL.
func (c CLI) CreatePR(ctx context.Context, base, head, title, body string) (string, error) {
	result, err := c.Runner.Run(ctx, "gh", "pr", "create", "-B", base, "-H", head, "-t", title, "-b", body)
	if err != nil {
		return "", fmt.Errorf("failed to run gh pr create: %w", err)
	}
	if result.ExitCode != 0 {
		return "", fmt.Errorf("gh pr create failed: %s", result.Stderr)
	}

	return strings.TrimSpace(string(result.Stdout)), nil
}

// SearchIssues returns the issues of any state matching the title search.
func (c CLI) SearchIssues(ctx context.Context, title string) ([]Issue, error) {
	result, err := c.Runner.Run(ctx, "gh", "issue", "list", "-R", c.Repo, "--search", title, "--state", "all", "--json", "number,state")
	if err != nil {
		return nil, fmt.Errorf("failed to run gh issue list: %w", err)
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("gh issue list failed: %s", result.Stderr)
	}

	var issues []Issue
	if len(strings.TrimSpace(string(result.Stdout))) == 0 {
		return issues, nil
	}
	if err := json.Unmarshal(result.Stdout, &issues); err != nil {
		return nil, fmt.Errorf("failed to parse gh issue list output: %w", err)
	}

	return issues, nil
}

// CreateIssue files a new issue and returns its URL. Anything gh writes to
// stderr is treated as a failure.
func (c CLI) CreateIssue(ctx context.Context, title, body string) (string, error) {
	result, err := c.Runner.Run(ctx, "gh", "issue", "create", "-R", c.Repo, "-t", title, "-b", body)
	if err != nil {
		return "", fmt.Errorf("failed to run gh issue create: %w", err)
	}
	if result.ExitCode != 0 || len(result.Stderr) > 0 {
		return "", fmt.Errorf("gh issue create failed: %s", result.Stderr)
	}

	return strings.TrimSpace(string(result.Stdout)), nil
}

// IssueURL builds the web link for an issue number on the target repository.
func (c CLI) IssueURL(number int) string {
	return fmt.Sprintf("https://github.com/%s/issues/%d", c.Repo, number)
}
