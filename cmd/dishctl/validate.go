package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dishstack/dishctl/internal/core/compose"
)

// newValidateCmd validates compose configurations without touching any
// container state. With no arguments it checks both stack files.
func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "Validate compose configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if len(files) == 0 {
				files = []string{a.cfg.Compose.DefaultFilePath(), a.cfg.Compose.FullFile}
			}

			out := cmd.OutOrStdout()
			var failures []string

			for _, path := range files {
				content, err := os.ReadFile(path)
				if err != nil {
					failures = append(failures, path)
					fmt.Fprintf(out, "%s: %v\n", path, err)
					continue
				}

				summary, err := compose.Validate(string(content))
				if err != nil {
					failures = append(failures, path)
					fmt.Fprintf(out, "%s: %v\n", path, err)
					continue
				}

				names := make([]string, len(summary.Services))
				for i, svc := range summary.Services {
					names[i] = svc.Name
				}
				fmt.Fprintf(out, "%s: valid (%d services: %s)\n",
					path, len(summary.Services), strings.Join(names, ", "))
			}

			if len(failures) > 0 {
				return &exitError{
					code:    ExitFailure,
					message: fmt.Sprintf("validation failed for %s", strings.Join(failures, ", ")),
					quiet:   true, // per-file diagnostics already printed
				}
			}
			return nil
		},
	}
}
