package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dishstack/dishctl/internal/shell/history"
	"github.com/dishstack/dishctl/internal/shell/runner"
)

// =============================================================================
// App Wiring
// =============================================================================

// app holds the state shared by all commands. Config and logger are
// populated by the root command's PersistentPreRunE.
type app struct {
	configPath string

	cfg    *Config
	logger *slog.Logger
	exec   *runner.Runner

	store *history.Store
}

func newApp() *app {
	return &app{}
}

// init loads config and wires the logger and runner.
func (a *app) init() error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return &exitError{code: ExitConfigError, err: err}
	}
	a.cfg = cfg
	a.logger = SetupLogger(cfg)
	a.exec = runner.New(a.logger)
	return nil
}

// close releases resources held across commands.
func (a *app) close() {
	if a.store != nil {
		a.store.Close()
		a.store = nil
	}
}

// =============================================================================
// Delegation
// =============================================================================

// delegate runs the docker CLI with argv, records the run, and propagates
// the delegated exit code unchanged.
func (a *app) delegate(ctx context.Context, command string, argv []string) error {
	start := time.Now()
	res := a.exec.Run(ctx, a.cfg.Docker.Binary, argv...)
	a.record(ctx, command, argv, res.Code, start)

	if res.Code == 0 {
		return nil
	}
	if !res.Started {
		// Spawn failure: nothing printed a diagnostic yet.
		return &exitError{code: res.Code, err: res.Err}
	}
	return delegatedExit(res.Code)
}

// record appends the run to the history store. Best-effort: failures are
// logged at debug and never change the command's outcome.
func (a *app) record(ctx context.Context, command string, argv []string, exitCode int, start time.Time) {
	if !a.cfg.History.Enabled {
		return
	}

	if a.store == nil {
		store, err := history.Open(a.cfg.History.Path, a.logger)
		if err != nil {
			a.logger.Debug("history store unavailable", "error", err)
			return
		}
		a.store = store
	}

	run := history.Run{
		Command:    command,
		Argv:       a.cfg.Docker.Binary + " " + strings.Join(argv, " "),
		ExitCode:   exitCode,
		StartedAt:  start.UTC(),
		DurationMS: time.Since(start).Milliseconds(),
	}
	if err := a.store.Record(ctx, run); err != nil {
		a.logger.Debug("failed to record run", "error", err)
	}
}

// =============================================================================
// Root Command
// =============================================================================

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "dishctl",
		Short: "Development stack control for the dish platform",
		Args:  cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		// Unmatched arguments land here instead of a subcommand.
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return usageErrorf("unknown command %q for %q", args[0], cmd.CommandPath())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to dishctl config file")

	// Flag parse failures are usage errors (exit code 2), not failures of
	// the command itself.
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	// The long help embeds connection parameters from config, so it is
	// rendered only after --config has been parsed.
	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		root.Long = rootLong(a)
		defaultHelp(cmd, args)
	})

	root.AddCommand(
		newDBCmd(a),
		newFullCmd(a),
		newShellCmd(a),
		newCleanCmd(a),
		newStatusCmd(a),
		newDoctorCmd(a),
		newValidateCmd(a),
		newConfigCmd(a),
		newHistoryCmd(a),
		newVersionCmd(a),
	)

	return root
}

// rootLong builds the root help text, including the stack's connection
// parameters so nobody digs them out of the compose files.
func rootLong(a *app) string {
	long := `dishctl drives the dish development stack.

The db stack runs Postgres and Redis only; the full stack adds the backend
and frontend (docker-compose.full.yml). Lifecycle commands delegate to the
docker CLI and exit with the delegated process's exit code.`

	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return long
	}
	return long + "\n\nConnection parameters:\n" + indent(cfg.Endpoints().Render(), "  ")
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// Make-style Aliases
// =============================================================================

// makeAliases maps the historical Makefile target names onto the noun-verb
// commands so existing muscle memory keeps working.
var makeAliases = map[string][]string{
	"db-up":         {"db", "up"},
	"db-down":       {"db", "down"},
	"db-restart":    {"db", "restart"},
	"db-logs":       {"db", "logs"},
	"full-up":       {"full", "up"},
	"full-down":     {"full", "down"},
	"full-restart":  {"full", "restart"},
	"full-logs":     {"full", "logs"},
	"backend-shell": {"shell", "backend"},
	"db-shell":      {"shell", "db"},
}

// normalizeArgs rewrites a leading Makefile-style target into its
// noun-verb form. All other arguments pass through untouched.
func normalizeArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	repl, ok := makeAliases[args[0]]
	if !ok {
		return args
	}
	out := make([]string, 0, len(repl)+len(args)-1)
	out = append(out, repl...)
	return append(out, args[1:]...)
}
