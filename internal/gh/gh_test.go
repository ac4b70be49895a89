package gh

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/alan/cdn-updater/internal/run"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner scripts results per command line and records every invocation.
type fakeRunner struct {
	calls   []string
	results map[string]run.Result
	errs    map[string]error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (run.Result, error) {
	cmdline := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, cmdline)
	if err, ok := f.errs[cmdline]; ok {
		return run.Result{}, err
	}
	return f.results[cmdline], nil
}

func TestBranchExists(t *testing.T) {
	const cmdline = "gh api repos/acme/widgets/branches/bot/update-cdn-2.0.0 --silent"

	tests := []struct {
		name    string
		result  run.Result
		exists  bool
		wantErr bool
	}{
		{
			name:   "branch exists",
			result: run.Result{ExitCode: 0},
			exists: true,
		},
		{
			name:   "404 means absent",
			result: run.Result{ExitCode: 1, Stderr: []byte("gh: Branch not found (HTTP 404)")},
			exists: false,
		},
		{
			name:    "other error text is fatal",
			result:  run.Result{ExitCode: 1, Stderr: []byte("gh: API rate limit exceeded (HTTP 403)")},
			wantErr: true,
		},
		{
			name:    "nonzero exit with empty stderr is fatal",
			result:  run.Result{ExitCode: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{results: map[string]run.Result{cmdline: tt.result}}
			cli := CLI{Runner: runner, Repo: "acme/widgets"}

			exists, err := cli.BranchExists(context.Background(), "bot/update-cdn-2.0.0")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.exists, exists)
		})
	}
}

func TestBranchExists_RunnerFailure(t *testing.T) {
	const cmdline = "gh api repos/acme/widgets/branches/b --silent"
	runner := &fakeRunner{errs: map[string]error{cmdline: fmt.Errorf("gh not installed")}}
	cli := CLI{Runner: runner, Repo: "acme/widgets"}

	_, err := cli.BranchExists(context.Background(), "b")
	require.Error(t, err)
}

func TestPRExistsForBranch(t *testing.T) {
	const cmdline = "gh pr list -R acme/widgets -H bot/update-cdn-2.0.0 --state all"

	tests := []struct {
		name    string
		result  run.Result
		exists  bool
		wantErr bool
	}{
		{
			name:   "pr listed",
			result: run.Result{Stdout: []byte("42\tUpdate Plotly.js CDN to v2.0.0\tbot/update-cdn-2.0.0\tOPEN\n")},
			exists: true,
		},
		{
			name:   "no output means no pr",
			result: run.Result{Stdout: []byte("\n")},
			exists: false,
		},
		{
			name:    "list failure is fatal",
			result:  run.Result{ExitCode: 1, Stderr: []byte("gh: could not resolve repository")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{results: map[string]run.Result{cmdline: tt.result}}
			cli := CLI{Runner: runner, Repo: "acme/widgets"}

			exists, err := cli.PRExistsForBranch(context.Background(), "bot/update-cdn-2.0.0")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.exists, exists)
		})
	}
}

func TestCreatePR(t *testing.T) {
	const cmdline = "gh pr create -B master -H bot/update-cdn-2.0.0 -t Update Plotly.js CDN to v2.0.0 -b This PR updates the CDN URL to v2.0.0."
	runner := &fakeRunner{results: map[string]run.Result{
		cmdline: {Stdout: []byte("https://github.com/acme/widgets/pull/42\n")},
	}}
	cli := CLI{Runner: runner, Repo: "acme/widgets"}

	url, err := cli.CreatePR(context.Background(), "master", "bot/update-cdn-2.0.0",
		"Update Plotly.js CDN to v2.0.0", "This PR updates the CDN URL to v2.0.0.")
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/acme/widgets/pull/42", url)
	assert.Len(t, runner.calls, 1)
}

func TestCreatePR_Failure(t *testing.T) {
	const cmdline = "gh pr create -B master -H b -t t -b b"
	runner := &fakeRunner{results: map[string]run.Result{
		cmdline: {ExitCode: 1, Stderr: []byte("gh: pull request already exists")},
	}}
	cli := CLI{Runner: runner, Repo: "acme/widgets"}

	_, err := cli.CreatePR(context.Background(), "master", "b", "t", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pull request already exists")
}

func TestSearchIssues(t *testing.T) {
	const cmdline = "gh issue list -R acme/widgets --search CDN not reachable for Plotly.js v2.0.0 --state all --json number,state"

	tests := []struct {
		name     string
		result   run.Result
		expected []Issue
		wantErr  bool
	}{
		{
			name:     "open and closed matches",
			result:   run.Result{Stdout: []byte(`[{"number":7,"state":"OPEN"},{"number":3,"state":"CLOSED"}]`)},
			expected: []Issue{{Number: 7, State: "OPEN"}, {Number: 3, State: "CLOSED"}},
		},
		{
			name:     "empty array",
			result:   run.Result{Stdout: []byte(`[]`)},
			expected: []Issue{},
		},
		{
			name:     "empty output",
			result:   run.Result{},
			expected: nil,
		},
		{
			name:    "malformed json",
			result:  run.Result{Stdout: []byte(`{not json`)},
			wantErr: true,
		},
		{
			name:    "list failure",
			result:  run.Result{ExitCode: 1, Stderr: []byte("gh: bad credentials")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{results: map[string]run.Result{cmdline: tt.result}}
			cli := CLI{Runner: runner, Repo: "acme/widgets"}

			issues, err := cli.SearchIssues(context.Background(), "CDN not reachable for Plotly.js v2.0.0")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, issues)
		})
	}
}

func TestCreateIssue(t *testing.T) {
	const cmdline = "gh issue create -R acme/widgets -t title -b body"

	t.Run("success", func(t *testing.T) {
		runner := &fakeRunner{results: map[string]run.Result{
			cmdline: {Stdout: []byte("https://github.com/acme/widgets/issues/8\n")},
		}}
		cli := CLI{Runner: runner, Repo: "acme/widgets"}

		url, err := cli.CreateIssue(context.Background(), "title", "body")
		require.NoError(t, err)
		assert.Equal(t, "https://github.com/acme/widgets/issues/8", url)
	})

	t.Run("stderr output is fatal even on exit 0", func(t *testing.T) {
		runner := &fakeRunner{results: map[string]run.Result{
			cmdline: {Stderr: []byte("gh: something went sideways")},
		}}
		cli := CLI{Runner: runner, Repo: "acme/widgets"}

		_, err := cli.CreateIssue(context.Background(), "title", "body")
		require.Error(t, err)
	})
}

func TestIssueURL(t *testing.T) {
	cli := CLI{Repo: "acme/widgets"}

	assert.Equal(t, "https://github.com/acme/widgets/issues/12", cli.IssueURL(12))
}
