package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets all DISHCTL_ variables for the duration of a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "DISHCTL_") {
			k, v, _ := strings.Cut(kv, "=")
			t.Setenv(k, v) // register restore
			os.Unsetenv(k)
		}
	}
}

// =============================================================================
// Config Loading Tests
// =============================================================================

func TestLoadConfig_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Compose.File)
	assert.Equal(t, "docker-compose.yml", cfg.Compose.DefaultFilePath())
	assert.Equal(t, "docker-compose.full.yml", cfg.Compose.FullFile)
	assert.Equal(t, "docker", cfg.Docker.Binary)
	assert.Equal(t, "dish_backend", cfg.Containers.Backend)
	assert.Equal(t, "dish_postgres", cfg.Containers.Postgres)
	assert.Equal(t, "dish_user", cfg.Postgres.User)
	assert.Equal(t, "dish_db", cfg.Postgres.Database)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 8000, cfg.Backend.Port)
	assert.Equal(t, 3000, cfg.Frontend.Port)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "./.dishctl/history.db", cfg.History.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadConfig_FromFile(t *testing.T) {
	clearEnv(t)

	configContent := `
compose:
  file: "compose/db.yml"
  full_file: "compose/full.yml"
  project: "dish"

docker:
  binary: "podman"

postgres:
  user: "admin"
  port: 15432

log:
  level: "debug"
  format: "json"
`
	tmpFile := filepath.Join(t.TempDir(), "dishctl.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(configContent), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, "compose/db.yml", cfg.Compose.File)
	assert.Equal(t, "compose/db.yml", cfg.Compose.DefaultFilePath())
	assert.Equal(t, "compose/full.yml", cfg.Compose.FullFile)
	assert.Equal(t, "dish", cfg.Compose.Project)
	assert.Equal(t, "podman", cfg.Docker.Binary)
	assert.Equal(t, "admin", cfg.Postgres.User)
	assert.Equal(t, 15432, cfg.Postgres.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	// Untouched keys keep their defaults.
	assert.Equal(t, "dish_db", cfg.Postgres.Database)
}

func TestLoadConfig_EnvironmentOverride(t *testing.T) {
	clearEnv(t)

	t.Setenv("DISHCTL_DOCKER_BINARY", "nerdctl")
	t.Setenv("DISHCTL_COMPOSE_PROJECT", "dish-dev")
	t.Setenv("DISHCTL_POSTGRES_PORT", "25432")
	t.Setenv("DISHCTL_LOG_LEVEL", "warn")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "nerdctl", cfg.Docker.Binary)
	assert.Equal(t, "dish-dev", cfg.Compose.Project)
	assert.Equal(t, 25432, cfg.Postgres.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfig_ExplicitFileMissing(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig("/nonexistent/path/dishctl.yaml")
	assert.Error(t, err)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	clearEnv(t)

	tmpFile := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("invalid: yaml: content: [[["), 0644))

	_, err := LoadConfig(tmpFile)
	assert.Error(t, err)
}

// =============================================================================
// Derived View Tests
// =============================================================================

func TestConfig_StackArgvMatchesCommandTable(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	// With defaults, the exact historical invocations come out.
	db := cfg.DBStack()
	assert.Equal(t, []string{"compose", "up", "-d"}, db.Up())
	assert.Equal(t, []string{"compose", "down"}, db.Down())
	assert.Equal(t, []string{"compose", "restart"}, db.Restart())
	assert.Equal(t, []string{"compose", "logs", "-f"}, db.Logs())
	assert.Equal(t, []string{"compose", "down", "-v"}, db.DownVolumes())

	full := cfg.FullStack()
	assert.Equal(t, []string{"compose", "-f", "docker-compose.full.yml", "up", "-d", "--build"}, full.Up())
	assert.Equal(t, []string{"compose", "-f", "docker-compose.full.yml", "down"}, full.Down())
	assert.Equal(t, []string{"compose", "-f", "docker-compose.full.yml", "restart"}, full.Restart())
	assert.Equal(t, []string{"compose", "-f", "docker-compose.full.yml", "logs", "-f"}, full.Logs())
	assert.Equal(t, []string{"compose", "-f", "docker-compose.full.yml", "down", "-v"}, full.DownVolumes())
}

func TestConfig_Endpoints(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	out := cfg.Endpoints().Render()
	assert.Contains(t, out, "localhost:5432")
	assert.Contains(t, out, "dish_user")
	assert.Contains(t, out, "dish_db")
}

// =============================================================================
// Logger Setup Tests
// =============================================================================

func TestSetupLogger(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		cfg := &Config{Log: LogConfig{Level: "debug", Format: format}}
		assert.NotNil(t, SetupLogger(cfg))
	}
}
