// Package run abstracts subprocess execution behind a small capability
// interface so the gh and git wrappers can be tested without spawning
// real processes.
package run

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Result holds the output of a finished command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner executes an external command and waits for it to finish.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs commands with os/exec in the given working directory.
// An empty Dir means the process working directory.
type ExecRunner struct {
	Dir string
}

// Run executes the command and captures stdout and stderr. A nonzero exit
// code is reported in the Result, not as an error; the error is reserved
// for failures to start the command at all.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // Arguments are built from configuration, not user input
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}

	return result, nil
}
