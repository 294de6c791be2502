package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dishstack/dishctl/internal/core/compose"
	"github.com/dishstack/dishctl/internal/shell/docker"
)

// newDoctorCmd runs the preflight checks: daemon reachable, compose CLI
// available, compose files present and valid.
func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the environment can run the dev stack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0

			check := func(name string, err error, detail string) {
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL  %s: %v\n", name, err)
					return
				}
				if detail != "" {
					fmt.Fprintf(out, "ok    %s (%s)\n", name, detail)
				} else {
					fmt.Fprintf(out, "ok    %s\n", name)
				}
			}

			// Docker daemon.
			cli, err := docker.New(a.cfg.Docker.Host)
			if err != nil {
				check("docker daemon", err, "")
			} else {
				defer cli.Close()
				info, pingErr := cli.Ping(cmd.Context())
				detail := ""
				if pingErr == nil {
					detail = fmt.Sprintf("server %s, api %s, %s", info.Version, info.APIVersion, info.OS)
				}
				check("docker daemon", pingErr, detail)
			}

			// Compose CLI plugin.
			ver, res := a.exec.Capture(cmd.Context(), a.cfg.Docker.Binary, "compose", "version", "--short")
			if res.Code != 0 {
				check("compose cli", fmt.Errorf("%s compose not available", a.cfg.Docker.Binary), "")
			} else {
				check("compose cli", nil, ver)
			}

			// Compose files.
			for _, path := range []string{a.cfg.Compose.DefaultFilePath(), a.cfg.Compose.FullFile} {
				content, readErr := os.ReadFile(path)
				if readErr != nil {
					check(path, readErr, "")
					continue
				}
				summary, valErr := compose.Validate(string(content))
				detail := ""
				if valErr == nil {
					detail = fmt.Sprintf("%d services", len(summary.Services))
				}
				check(path, valErr, detail)
			}

			if failed > 0 {
				return &exitError{code: ExitFailure, message: fmt.Sprintf("%d check(s) failed", failed)}
			}
			return nil
		},
	}
}
