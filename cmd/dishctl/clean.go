package main

import (
	"github.com/spf13/cobra"
)

// newCleanCmd tears down both stacks with volume removal. The second
// teardown runs even when the first fails; the exit code is the first
// non-zero of the two.
func newCleanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Tear down both stacks and remove their volumes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dbErr := a.delegate(ctx, "clean", a.cfg.DBStack().DownVolumes())
			fullErr := a.delegate(ctx, "clean", a.cfg.FullStack().DownVolumes())

			if dbErr != nil {
				return dbErr
			}
			return fullErr
		},
	}
}
