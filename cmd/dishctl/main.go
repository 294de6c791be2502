// Package main provides the dishctl binary, the development-stack control
// CLI for the dish platform.
//
// dishctl wraps the docker CLI for stack lifecycle (up, down, restart,
// logs, shells, clean) and talks to the Docker Engine API directly for
// read-only reporting (status, doctor).
package main

import (
	"errors"
	"fmt"
	"os"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// Exit codes. Delegated commands propagate the external process's exit
// code unchanged instead of using these.
const (
	ExitSuccess     = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitConfigError = 3
)

// exitError carries an explicit process exit code through cobra. quiet
// marks errors whose diagnostics were already printed by a delegated
// process.
type exitError struct {
	code    int
	message string
	quiet   bool
	err     error
}

func (e *exitError) Error() string {
	if e.message != "" {
		return e.message
	}
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

// delegatedExit wraps a non-zero exit from a delegated process. The
// process already printed its own diagnostics, so this stays quiet.
func delegatedExit(code int) error {
	return &exitError{
		code:    code,
		message: fmt.Sprintf("delegated command exited with code %d", code),
		quiet:   true,
	}
}

// UsageError marks command-line mistakes: unknown commands, bad flags,
// misplaced arguments. These exit with ExitUsage.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usageErrorf(format string, args ...interface{}) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	app := newApp()
	defer app.close()

	root := newRootCmd(app)
	root.SetArgs(normalizeArgs(args))

	err := root.Execute()
	if err == nil {
		return ExitSuccess
	}

	var uErr *UsageError
	if errors.As(err, &uErr) {
		fmt.Fprintf(os.Stderr, "dishctl: %v\n", uErr)
		fmt.Fprintln(os.Stderr, "Run 'dishctl --help' for usage.")
		return ExitUsage
	}

	var xErr *exitError
	if errors.As(err, &xErr) {
		if !xErr.quiet {
			fmt.Fprintf(os.Stderr, "dishctl: %v\n", xErr)
		}
		return xErr.code
	}

	fmt.Fprintf(os.Stderr, "dishctl: %v\n", err)
	return ExitFailure
}
