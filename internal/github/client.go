// Package github wraps the GitHub REST API for the tag queries the bot needs.
package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// Client wraps the GitHub API client for a single upstream repository
type Client struct {
	client *github.Client
	ctx    context.Context
	owner  string
	repo   string
}

// NewClient creates a new GitHub client with token authentication for the
// upstream repository given as "owner/name".
func NewClient(ctx context.Context, token, upstream string) (*Client, error) {
	owner, repo, err := splitRepo(upstream)
	if err != nil {
		return nil, err
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		client: github.NewClient(tc),
		ctx:    ctx,
		owner:  owner,
		repo:   repo,
	}, nil
}

// splitRepo splits an "owner/name" repository identifier
func splitRepo(repo string) (string, string, error) {
	parts := strings.SplitN(repo, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q, expected owner/name", repo)
	}
	return parts[0], parts[1], nil
}

// ListTags gets all tag names from the upstream repository
func (c *Client) ListTags() ([]string, error) {
	opts := &github.ListOptions{
		PerPage: 100,
	}

	var allTags []string

	for {
		tags, resp, err := c.client.Repositories.ListTags(c.ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list tags: %w", err)
		}

		for _, tag := range tags {
			allTags = append(allTags, tag.GetName())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allTags, nil
}
