package main

import (
	"github.com/spf13/cobra"

	"github.com/dishstack/dishctl/internal/core/stack"
)

// newDBCmd groups lifecycle commands for the database-only stack.
func newDBCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the database stack (Postgres + Redis)",
	}
	addLifecycleCmds(cmd, a, "db", func() stack.Stack { return a.cfg.DBStack() })
	return cmd
}

// newFullCmd groups lifecycle commands for the full stack.
func newFullCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "full",
		Short: "Manage the full stack (database + backend + frontend)",
	}
	addLifecycleCmds(cmd, a, "full", func() stack.Stack { return a.cfg.FullStack() })
	return cmd
}

// addLifecycleCmds attaches the four lifecycle verbs to a stack command.
// The stack definition is resolved lazily because config is not loaded
// until the root command's PersistentPreRunE has run.
func addLifecycleCmds(parent *cobra.Command, a *app, name string, stackFn func() stack.Stack) {
	parent.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Start the " + name + " stack detached",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.delegate(cmd.Context(), name+" up", stackFn().Up())
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Stop and remove the " + name + " stack's containers",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.delegate(cmd.Context(), name+" down", stackFn().Down())
			},
		},
		&cobra.Command{
			Use:   "restart",
			Short: "Restart the " + name + " stack's containers",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.delegate(cmd.Context(), name+" restart", stackFn().Restart())
			},
		},
		&cobra.Command{
			Use:   "logs",
			Short: "Follow the " + name + " stack's logs",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.delegate(cmd.Context(), name+" logs", stackFn().Logs())
			},
		},
	)
}
