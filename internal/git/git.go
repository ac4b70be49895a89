// Package git wraps the git CLI operations the bot performs in the
// checked-out workspace.
package git

import (
	"context"
	"fmt"

	"github.com/alan/cdn-updater/internal/run"
)

// CLI runs git commands through the injected runner. The runner carries the
// workspace directory.
type CLI struct {
	Runner run.Runner
}

// CheckoutNewBranch creates and switches to a new branch.
func (c CLI) CheckoutNewBranch(ctx context.Context, branch string) error {
	return c.exec(ctx, "checkout", "checkout", "-b", branch)
}

// AddAll stages every change in the workspace.
func (c CLI) AddAll(ctx context.Context) error {
	return c.exec(ctx, "add", "add", ".")
}

// Commit records the staged changes under the given committer identity.
func (c CLI) Commit(ctx context.Context, name, email, message string) error {
	return c.exec(ctx, "commit",
		"-c", fmt.Sprintf("user.name=%s", name),
		"-c", fmt.Sprintf("user.email=%s", email),
		"commit", "-m", message)
}

// Push publishes the branch to origin with an upstream reference.
func (c CLI) Push(ctx context.Context, branch string) error {
	return c.exec(ctx, "push", "push", "-u", "origin", branch)
}

func (c CLI) exec(ctx context.Context, verb string, args ...string) error {
	result, err := c.Runner.Run(ctx, "git", args...)
	if err != nil {
		return fmt.Errorf("failed to run git %s: %w", verb, err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("git %s failed: %s", verb, result.Stderr)
	}
	return nil
}
