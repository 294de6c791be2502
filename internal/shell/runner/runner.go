// Package runner spawns the external processes dishctl delegates to.
//
// Lifecycle commands inherit the caller's stdio so interactive sessions
// (shells, `logs -f`) attach directly to the terminal; dishctl never
// interposes on the delegated process's output.
package runner

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// exitSpawnFailure is the exit code reported when the delegated process
// could not be started at all (binary missing, permission denied).
const exitSpawnFailure = 1

// Result holds the outcome of a delegated process. Started distinguishes
// a process that ran and exited non-zero (it printed its own diagnostics)
// from one that could not be spawned at all.
type Result struct {
	Code    int
	Started bool
	Err     error
}

// Runner executes external commands.
type Runner struct {
	logger *slog.Logger
}

// New creates a Runner. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Run executes name with args, wiring the process to the caller's stdio.
// The returned Result carries the process's exit code unchanged.
func (r *Runner) Run(ctx context.Context, name string, args ...string) Result {
	r.logger.Debug("exec", "cmd", render(name, args))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return wait(cmd.Run())
}

// Capture executes name with args and returns trimmed stdout. Stderr is
// discarded; callers that need diagnostics use Run.
func (r *Runner) Capture(ctx context.Context, name string, args ...string) (string, Result) {
	r.logger.Debug("exec", "cmd", render(name, args))

	cmd := exec.CommandContext(ctx, name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf

	res := wait(cmd.Run())
	return strings.TrimSpace(buf.String()), res
}

// wait maps an exec error to a Result with the delegated exit code.
func wait(err error) Result {
	if err == nil {
		return Result{Code: 0, Started: true}
	}
	if ee, ok := err.(*exec.ExitError); ok {
		return Result{Code: ee.ExitCode(), Started: true, Err: err}
	}
	return Result{Code: exitSpawnFailure, Err: err}
}

// render formats a command line for debug logging.
func render(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
