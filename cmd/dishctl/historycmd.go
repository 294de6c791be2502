package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dishstack/dishctl/internal/shell/history"
)

// newHistoryCmd lists recent dishctl invocations from the local run store.
func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent dishctl invocations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.History.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "history is disabled (history.enabled=false)")
				return nil
			}

			store, err := history.Open(a.cfg.History.Path, a.logger)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no recorded runs")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tCOMMAND\tEXIT\tDURATION\tINVOCATION")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					run.StartedAt.Local().Format(time.DateTime),
					run.Command,
					run.ExitCode,
					time.Duration(run.DurationMS)*time.Millisecond,
					run.Argv,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to show")
	return cmd
}
