package stack

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// Compose Argv Tests
// =============================================================================

func TestStack_DefaultStackArgv(t *testing.T) {
	s := Stack{Name: "db"}

	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"up", s.Up(), []string{"compose", "up", "-d"}},
		{"down", s.Down(), []string{"compose", "down"}},
		{"restart", s.Restart(), []string{"compose", "restart"}},
		{"logs", s.Logs(), []string{"compose", "logs", "-f"}},
		{"down volumes", s.DownVolumes(), []string{"compose", "down", "-v"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestStack_FullStackArgv(t *testing.T) {
	s := Stack{Name: "full", ComposeFile: "docker-compose.full.yml", BuildOnUp: true}

	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"up forces build", s.Up(), []string{"compose", "-f", "docker-compose.full.yml", "up", "-d", "--build"}},
		{"down", s.Down(), []string{"compose", "-f", "docker-compose.full.yml", "down"}},
		{"restart", s.Restart(), []string{"compose", "-f", "docker-compose.full.yml", "restart"}},
		{"logs", s.Logs(), []string{"compose", "-f", "docker-compose.full.yml", "logs", "-f"}},
		{"down volumes", s.DownVolumes(), []string{"compose", "-f", "docker-compose.full.yml", "down", "-v"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestStack_ProjectFlag(t *testing.T) {
	s := Stack{Name: "db", Project: "dish"}
	assert.Equal(t, []string{"compose", "-p", "dish", "up", "-d"}, s.Up())

	s = Stack{Name: "full", ComposeFile: "docker-compose.full.yml", Project: "dish"}
	assert.Equal(t, []string{"compose", "-f", "docker-compose.full.yml", "-p", "dish", "down"}, s.Down())
}

// =============================================================================
// Shell Argv Tests
// =============================================================================

func TestExecShell(t *testing.T) {
	got := ExecShell("dish_backend", "/bin/bash")
	assert.Equal(t, []string{"exec", "-it", "dish_backend", "/bin/bash"}, got)
}

func TestExecPsql(t *testing.T) {
	got := ExecPsql("dish_postgres", "dish_user", "dish_db")
	assert.Equal(t, []string{"exec", "-it", "dish_postgres", "psql", "-U", "dish_user", "-d", "dish_db"}, got)
}

// =============================================================================
// Endpoints Tests
// =============================================================================

func TestEndpoints_Render(t *testing.T) {
	e := Endpoints{
		PostgresPort:     5432,
		PostgresUser:     "dish_user",
		PostgresDatabase: "dish_db",
		RedisPort:        6379,
		BackendPort:      8000,
		FrontendPort:     3000,
	}

	out := e.Render()
	assert.Contains(t, out, "localhost:5432")
	assert.Contains(t, out, "user dish_user, database dish_db")
	assert.Contains(t, out, "localhost:6379")
	assert.Contains(t, out, "http://localhost:8000")
	assert.Contains(t, out, "http://localhost:3000")
	assert.True(t, strings.HasSuffix(out, "\n"))
}
