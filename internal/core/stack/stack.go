// Package stack contains pure functions for building docker invocations.
// This is part of the Functional Core - nothing here spawns a process.
package stack

import "fmt"

// =============================================================================
// Stack Definition
// =============================================================================

// Stack describes one compose configuration dishctl manages.
type Stack struct {
	// Name is the short stack name ("db" or "full").
	Name string

	// ComposeFile is the compose file passed via -f. Empty means the
	// compose CLI's implicit default (docker-compose.yml).
	ComposeFile string

	// Project is the optional compose project name passed via -p.
	Project string

	// BuildOnUp forces an image rebuild when the stack is brought up.
	BuildOnUp bool
}

// composeArgs builds the common `compose [-f file] [-p project]` prefix
// followed by the subcommand arguments.
func (s Stack) composeArgs(sub ...string) []string {
	args := []string{"compose"}
	if s.ComposeFile != "" {
		args = append(args, "-f", s.ComposeFile)
	}
	if s.Project != "" {
		args = append(args, "-p", s.Project)
	}
	return append(args, sub...)
}

// Up returns the argv (after the docker binary) that starts the stack
// detached. Stacks with BuildOnUp set also force an image rebuild.
func (s Stack) Up() []string {
	if s.BuildOnUp {
		return s.composeArgs("up", "-d", "--build")
	}
	return s.composeArgs("up", "-d")
}

// Down returns the argv that stops and removes the stack's containers.
func (s Stack) Down() []string {
	return s.composeArgs("down")
}

// DownVolumes returns the argv that tears down the stack including its
// named volumes. Used by clean.
func (s Stack) DownVolumes() []string {
	return s.composeArgs("down", "-v")
}

// Restart returns the argv that restarts the stack's containers.
func (s Stack) Restart() []string {
	return s.composeArgs("restart")
}

// Logs returns the argv that follows the stack's aggregated logs.
func (s Stack) Logs() []string {
	return s.composeArgs("logs", "-f")
}

// =============================================================================
// Container Shells
// =============================================================================

// ExecShell returns the argv that opens an interactive shell inside a
// running container.
func ExecShell(containerName, shell string) []string {
	return []string{"exec", "-it", containerName, shell}
}

// ExecPsql returns the argv that opens an interactive psql session inside
// a running Postgres container.
func ExecPsql(containerName, user, database string) []string {
	return []string{"exec", "-it", containerName, "psql", "-U", user, "-d", database}
}

// =============================================================================
// Connection Parameters
// =============================================================================

// Endpoints holds the well-known local connection parameters of the dev
// stack, printed by help so nobody has to dig them out of the compose files.
type Endpoints struct {
	PostgresPort     int
	PostgresUser     string
	PostgresDatabase string
	RedisPort        int
	BackendPort      int
	FrontendPort     int
}

// Render formats the endpoints as the lines help prints.
func (e Endpoints) Render() string {
	return fmt.Sprintf(
		"Postgres:  localhost:%d (user %s, database %s)\n"+
			"Redis:     localhost:%d\n"+
			"Backend:   http://localhost:%d\n"+
			"Frontend:  http://localhost:%d\n",
		e.PostgresPort, e.PostgresUser, e.PostgresDatabase,
		e.RedisPort, e.BackendPort, e.FrontendPort,
	)
}
