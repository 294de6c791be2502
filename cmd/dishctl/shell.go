package main

import (
	"github.com/spf13/cobra"

	"github.com/dishstack/dishctl/internal/core/stack"
)

// newShellCmd groups the interactive container shells. These block until
// the user exits the shell; the container must already be running.
func newShellCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Open a shell inside a running container",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "backend",
			Short: "Open bash inside the backend container",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				argv := stack.ExecShell(a.cfg.Containers.Backend, "/bin/bash")
				return a.delegate(cmd.Context(), "shell backend", argv)
			},
		},
		&cobra.Command{
			Use:   "db",
			Short: "Open psql inside the Postgres container",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				argv := stack.ExecPsql(a.cfg.Containers.Postgres, a.cfg.Postgres.User, a.cfg.Postgres.Database)
				return a.delegate(cmd.Context(), "shell db", argv)
			},
		},
	)

	return cmd
}
