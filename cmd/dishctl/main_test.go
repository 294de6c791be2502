package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Exit Code Mapping Tests
// =============================================================================

func TestRun_Success(t *testing.T) {
	clearEnv(t)

	assert.Equal(t, ExitSuccess, run([]string{"version"}))
	assert.Equal(t, ExitSuccess, run([]string{"--help"}))
	assert.Equal(t, ExitSuccess, run(nil))
}

func TestRun_UsageErrors(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown root flag", []string{"--bogus"}},
		{"unknown subcommand flag", []string{"db", "up", "--bogus"}},
		{"unknown command", []string{"bogus"}},
		{"unknown alias-style command", []string{"bogus-up"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, ExitUsage, run(tt.args))
		})
	}
}

func TestRun_ConfigError(t *testing.T) {
	clearEnv(t)

	code := run([]string{"--config", "/nonexistent/dishctl.yaml", "db", "up"})
	assert.Equal(t, ExitConfigError, code)
}

func TestRun_DelegatedExitCodePropagates(t *testing.T) {
	clearEnv(t)

	// Stand-in docker binary that always fails with a distinctive code.
	script := filepath.Join(t.TempDir(), "docker-stub")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexit 7\n"), 0o755))

	t.Setenv("DISHCTL_DOCKER_BINARY", script)
	t.Setenv("DISHCTL_HISTORY_ENABLED", "false")

	assert.Equal(t, 7, run([]string{"db", "up"}))
	assert.Equal(t, 7, run([]string{"full", "down"}))
}

func TestRun_SpawnFailure(t *testing.T) {
	clearEnv(t)

	t.Setenv("DISHCTL_DOCKER_BINARY", "dishctl-no-such-binary-anywhere")
	t.Setenv("DISHCTL_HISTORY_ENABLED", "false")

	assert.Equal(t, ExitFailure, run([]string{"db", "down"}))
}
