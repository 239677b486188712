// Package execx runs external commands with bounded execution time.
//
// Checks and remediations that shell out (git, npx, the diagnosis CLI) go
// through this package so a missing binary or a hung process degrades into
// a value the caller can inspect instead of an unbounded wait.
package execx

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/cockroachdb/errors"
)

// Exit codes reported for failure modes that do not come from the process
// itself, following shell conventions.
const (
	// ExitTimeout is reported when the context deadline expired.
	ExitTimeout = 124

	// ExitNotFound is reported when the binary could not be located.
	ExitNotFound = 127
)

// Result holds the outcome of a command execution.
type Result struct {
	Stdout   string
	Stderr   string
	Duration time.Duration
	ExitCode int
}

// TimedOut returns true if the command was killed by a deadline.
func (r Result) TimedOut() bool {
	return r.ExitCode == ExitTimeout
}

// NotFound returns true if the binary was not found on PATH.
func (r Result) NotFound() bool {
	return r.ExitCode == ExitNotFound
}

// Run executes name with args in dir, capturing output and duration.
// The context bounds execution; on deadline expiry the result carries
// ExitTimeout, on a missing binary ExitNotFound.
//
// A non-nil error is returned alongside the populated Result so callers can
// choose between treating failure as an error or inspecting the exit code.
func Run(ctx context.Context, name string, args []string, dir string) (Result, error) {
	start := time.Now()
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	} else {
		res.ExitCode = 1
	}

	switch {
	case ctx.Err() != nil:
		res.ExitCode = ExitTimeout
		return res, errors.Wrapf(ctx.Err(), "running %s", name)
	case errors.Is(err, exec.ErrNotFound):
		res.ExitCode = ExitNotFound
	}

	return res, errors.Wrapf(err, "running %s", name)
}

// RunTimeout is a convenience wrapper that derives a deadline from timeout.
func RunTimeout(parent context.Context, timeout time.Duration, name string, args []string, dir string) (Result, error) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()
	return Run(ctx, name, args, dir)
}

// Start launches name with args in dir without waiting for completion.
// Used for fire-and-forget remediations; the process is released so it
// outlives the caller. Only startup failures are reported.
func Start(name string, args []string, dir string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "starting %s", name)
	}
	return errors.Wrapf(cmd.Process.Release(), "releasing %s", name)
}
