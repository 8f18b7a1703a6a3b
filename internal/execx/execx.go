// Package execx runs external commands with capture support and spinner UX.
//
// The provisioning orchestrator and the dependency installer both go through
// a Runner; the command constructor is injectable so tests can substitute
// fake processes (or canned output) without touching a real CLI.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single external invocation. The external backend
// CLI has no caller-visible timeout of its own; this is a robustness bound,
// not a semantic one.
const DefaultTimeout = 5 * time.Minute

// Runner executes external commands.
type Runner struct {
	stdout  io.Writer
	stderr  io.Writer
	env     []string
	dir     string
	timeout time.Duration

	// For mocking in tests
	commandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// Options configures command execution.
type Options struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Env     []string      // Additional environment variables
	Dir     string        // Working directory
	Timeout time.Duration // Per-invocation timeout; DefaultTimeout when zero
}

// NewRunner creates a runner with sensible defaults.
func NewRunner(opts *Options) *Runner {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	return &Runner{
		stdout:      opts.Stdout,
		stderr:      opts.Stderr,
		env:         opts.Env,
		dir:         opts.Dir,
		timeout:     opts.Timeout,
		commandFunc: exec.CommandContext,
	}
}

// Result holds the captured output of one invocation.
type Result struct {
	Stdout string
	Stderr string
}

// Run executes a command, streaming output to the runner's writers.
func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := r.commandFunc(ctx, name, args...)
	r.configure(cmd)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		return r.wrapError(name, err)
	}
	return nil
}

// RunCapture executes a command and captures stdout and stderr separately.
//
// On a non-zero exit the captured output is still returned alongside the
// error, so callers can scrape it (e.g. for "already exists" detection).
func (r *Runner) RunCapture(ctx context.Context, name string, args ...string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := r.commandFunc(ctx, name, args...)
	r.configure(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		return res, r.wrapError(name, err)
	}
	return res, nil
}

func (r *Runner) configure(cmd *exec.Cmd) {
	if r.dir != "" {
		cmd.Dir = r.dir
	}
	if len(r.env) > 0 {
		cmd.Env = append(os.Environ(), r.env...)
	}
}

func (r *Runner) wrapError(name string, err error) error {
	if isCommandNotFound(err) {
		return fmt.Errorf("%w\n💡 Command '%s' not found. Please install it and try again", err, name)
	}
	return fmt.Errorf("%s failed: %w", name, err)
}

// isCommandNotFound checks if an error indicates a command was not found.
func isCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, exec.ErrNotFound) ||
		strings.Contains(err.Error(), "executable file not found") ||
		strings.Contains(err.Error(), "command not found")
}
