// Package update implements the CDN update workflow: resolve the latest
// upstream version, compare it with the embedded URL, and publish either a
// pull request or an issue.
package update

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/alan/cdn-updater/internal/cdn"
	"github.com/alan/cdn-updater/internal/changelog"
	"github.com/alan/cdn-updater/internal/config"
	"github.com/alan/cdn-updater/internal/gh"
	"github.com/alan/cdn-updater/internal/git"
	"github.com/alan/cdn-updater/internal/version"
)

// Duplicate stops. Each aborts the run with a nonzero exit so the scheduled
// job surfaces that the update is already in flight.
var (
	// ErrBranchExists indicates the update branch is already on the remote
	ErrBranchExists = errors.New("branch already exists")
	// ErrPRExists indicates a pull request for the update branch already exists
	ErrPRExists = errors.New("pull request already exists")
	// ErrIssueOpen indicates an open issue already reports the unreachable URL
	ErrIssueOpen = errors.New("issue already open")
)

// Outcome is the terminal state of a successful run.
type Outcome int

const (
	// OutcomeUpToDate means the embedded URL already points at the latest version
	OutcomeUpToDate Outcome = iota
	// OutcomePRCreated means a pull request with the new URL was opened
	OutcomePRCreated
	// OutcomeIssueCreated means an issue reporting the unreachable URL was filed
	OutcomeIssueCreated
	// OutcomeIssueClosed means the unreachable URL was already reported and triaged
	OutcomeIssueClosed
)

// BranchName derives the update branch for a version.
func BranchName(version string) string {
	return fmt.Sprintf("bot/update-cdn-%s", version)
}

// PRTitle derives the pull request title for a version.
func PRTitle(version string) string {
	return fmt.Sprintf("Update Plotly.js CDN to v%s", version)
}

// PRBody derives the pull request body for a version.
func PRBody(version string) string {
	return fmt.Sprintf("This PR updates the CDN URL to v%s.", version)
}

// IssueTitle derives the issue title for an unreachable version.
func IssueTitle(version string) string {
	return fmt.Sprintf("CDN not reachable for Plotly.js v%s", version)
}

// IssueBody derives the issue body for an unreachable URL.
func IssueBody(url string) string {
	return fmt.Sprintf("URL: %s - invalid url", url)
}

// Workflow holds the collaborators for one update run.
type Workflow struct {
	Config *config.Config
	Tags   version.TagLister
	HTTP   *http.Client
	GH     gh.CLI
	Git    git.CLI
}

// Run executes one pass of the update check. A nil error with an Outcome is
// a terminal success; duplicate stops come back as wrapped sentinel errors.
func (w *Workflow) Run(ctx context.Context) (Outcome, error) {
	latest, err := version.Latest(w.Tags)
	if err != nil {
		return 0, err
	}
	slog.Info("Resolved latest upstream version", "version", latest)

	newURL := cdn.URL(w.Config.CDNTemplate, latest)

	targetPath := filepath.Join(w.Config.Workspace, w.Config.TargetFile)
	content, err := os.ReadFile(targetPath) //nolint:gosec // Path is from configuration
	if err != nil {
		return 0, fmt.Errorf("failed to read target file: %w", err)
	}

	currentURL, err := cdn.ExtractURL(w.Config.CDNTemplate, string(content))
	if err != nil {
		return 0, err
	}

	if newURL == currentURL {
		fmt.Println("Already up to date")
		return OutcomeUpToDate, nil
	}

	slog.Info("CDN URL is out of date", "current", currentURL, "candidate", newURL)

	reachable, err := cdn.Verify(ctx, w.HTTP, newURL)
	if err != nil {
		return 0, err
	}

	if reachable {
		return w.publishPR(ctx, latest, targetPath, string(content), currentURL, newURL)
	}

	return w.publishIssue(ctx, latest, newURL)
}

// publishPR rewrites the constant and opens the update pull request, stopping
// first if the branch or a pull request for it already exists.
func (w *Workflow) publishPR(ctx context.Context, latest, targetPath, content, currentURL, newURL string) (Outcome, error) {
	branch := BranchName(latest)
	title := PRTitle(latest)

	branchExists, err := w.GH.BranchExists(ctx, branch)
	if err != nil {
		return 0, err
	}
	if branchExists {
		return 0, fmt.Errorf("%w: %s", ErrBranchExists, branch)
	}

	prExists, err := w.GH.PRExistsForBranch(ctx, branch)
	if err != nil {
		return 0, err
	}
	if prExists {
		return 0, fmt.Errorf("%w for branch %s", ErrPRExists, branch)
	}

	// Single first-occurrence replacement of the embedded URL.
	updated := strings.Replace(content, currentURL, newURL, 1)
	if err := os.WriteFile(targetPath, []byte(updated), 0600); err != nil {
		return 0, fmt.Errorf("failed to rewrite target file: %w", err)
	}

	if err := changelog.Update(w.Config.Workspace, w.Config.ChangelogFile, latest, title); err != nil {
		return 0, fmt.Errorf("failed to update changelog: %w", err)
	}

	if err := w.Git.CheckoutNewBranch(ctx, branch); err != nil {
		return 0, err
	}
	if err := w.Git.AddAll(ctx); err != nil {
		return 0, err
	}
	if err := w.Git.Commit(ctx, w.Config.BotName, w.Config.BotEmail, fmt.Sprintf("chore: %s", title)); err != nil {
		return 0, err
	}
	if err := w.Git.Push(ctx, branch); err != nil {
		return 0, err
	}

	prURL, err := w.GH.CreatePR(ctx, w.Config.BaseBranch, branch, title, PRBody(latest))
	if err != nil {
		return 0, err
	}

	fmt.Println("Pull request:", prURL)
	return OutcomePRCreated, nil
}

// publishIssue reports the unreachable URL, unless an issue for it is
// already open (duplicate stop) or was already closed (triaged no-op).
func (w *Workflow) publishIssue(ctx context.Context, latest, newURL string) (Outcome, error) {
	title := IssueTitle(latest)

	issues, err := w.GH.SearchIssues(ctx, title)
	if err != nil {
		return 0, err
	}

	for _, issue := range issues {
		if issue.State == "OPEN" {
			link := w.GH.IssueURL(issue.Number)
			fmt.Printf("Issue '%s' already exists in:\n%s\n", title, link)
			return 0, fmt.Errorf("%w: %s", ErrIssueOpen, link)
		}
	}
	if len(issues) > 0 {
		fmt.Printf("Issue '%s' is closed\n", title)
		return OutcomeIssueClosed, nil
	}

	issueURL, err := w.GH.CreateIssue(ctx, title, IssueBody(newURL))
	if err != nil {
		return 0, err
	}

	fmt.Printf("The issue '%s' was created in %s\n", title, issueURL)
	return OutcomeIssueCreated, nil
}
