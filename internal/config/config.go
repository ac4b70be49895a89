// Package config provides the cdn-updater configuration, loaded from an
// optional YAML file with environment overrides for the CI contract.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds everything the update workflow needs. File-sourced fields
// have defaults that reproduce the production bot; Repo and Workspace come
// from the environment set by the CI runner.
type Config struct {
	UpstreamRepo  string `yaml:"upstream_repo"`
	CDNTemplate   string `yaml:"cdn_template"`
	TargetFile    string `yaml:"target_file"`
	BaseBranch    string `yaml:"base_branch"`
	ChangelogFile string `yaml:"changelog_file"`
	BotName       string `yaml:"bot_name"`
	BotEmail      string `yaml:"bot_email"`

	// Environment-sourced, never read from the YAML file.
	Repo      string `yaml:"-"`
	Workspace string `yaml:"-"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		UpstreamRepo:  "plotly/plotly.js",
		CDNTemplate:   "https://cdn.plot.ly/plotly-%s.js",
		TargetFile:    "py/kaleido/_page_generator.py",
		BaseBranch:    "master",
		ChangelogFile: "CHANGELOG.txt",
		BotName:       "github-actions",
		BotEmail:      "github-actions@github.com",
	}
}

// Load builds the configuration from the optional YAML file at filename
// (empty means defaults only) and the REPO / GITHUB_WORKSPACE environment.
func Load(filename string) (*Config, error) {
	config := Default()

	if filename != "" {
		data, err := os.ReadFile(filename) //nolint:gosec // Config filename is from command-line flag
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.Repo = os.Getenv("REPO")
	config.Workspace = os.Getenv("GITHUB_WORKSPACE")

	return config, nil
}

// Validate checks the environment contract required for the full check run.
func (c *Config) Validate() error {
	if c.Repo == "" {
		return fmt.Errorf("REPO environment variable is required")
	}
	if c.Workspace == "" {
		return fmt.Errorf("GITHUB_WORKSPACE environment variable is required")
	}
	if c.UpstreamRepo == "" {
		return fmt.Errorf("upstream_repo must not be empty")
	}
	if c.CDNTemplate == "" {
		return fmt.Errorf("cdn_template must not be empty")
	}
	if c.TargetFile == "" {
		return fmt.Errorf("target_file must not be empty")
	}
	return nil
}

// GitHubToken retrieves and validates the GitHub API token
func GitHubToken() (string, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return "", fmt.Errorf("GITHUB_TOKEN environment variable is required")
	}
	return token, nil
}
