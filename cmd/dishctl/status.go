package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dishstack/dishctl/internal/shell/docker"
)

// newStatusCmd reports the containers of both stacks via the Docker Engine
// API. Read-only: never mutates container state.
func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show stack containers with state and published ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := docker.New(a.cfg.Docker.Host)
			if err != nil {
				return err
			}
			defer cli.Close()

			containers, err := cli.ListStackContainers(cmd.Context(), a.cfg.Compose.Project)
			if err != nil {
				return err
			}

			if len(containers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no stack containers found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSERVICE\tPROJECT\tSTATE\tSTATUS\tPORTS")
			for _, c := range containers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					c.Name, c.Service, c.Project, c.State, c.Status,
					strings.Join(c.Ports, ", "),
				)
			}
			return w.Flush()
		},
	}
}
