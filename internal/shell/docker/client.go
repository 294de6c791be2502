// Package docker provides read-only access to the Docker Engine API for
// status and preflight reporting. Lifecycle changes go through the compose
// CLI, never through this package.
package docker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	ErrConnectionFailed = errors.New("docker connection failed")
)

// OpError wraps errors with the engine operation that failed.
type OpError struct {
	Op      string
	Message string
	Err     error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// =============================================================================
// Client
// =============================================================================

// Client wraps the Docker SDK client.
type Client struct {
	cli *client.Client
}

// New creates a Docker Engine API client. If host is empty, the default
// host from the environment is used.
func New(host string) (*Client, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, &OpError{Op: "New", Message: "failed to create client", Err: ErrConnectionFailed}
	}
	return &Client{cli: cli}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.cli.Close()
}

// ServerInfo describes the reachable Docker daemon.
type ServerInfo struct {
	Version    string
	APIVersion string
	OS         string
}

// Ping verifies the daemon is reachable and returns its version info.
func (c *Client) Ping(ctx context.Context) (ServerInfo, error) {
	version, err := c.cli.ServerVersion(ctx)
	if err != nil {
		return ServerInfo{}, &OpError{Op: "Ping", Message: err.Error(), Err: ErrConnectionFailed}
	}
	return ServerInfo{
		Version:    version.Version,
		APIVersion: version.APIVersion,
		OS:         version.Os,
	}, nil
}

// =============================================================================
// Container Status
// =============================================================================

// composeProjectLabel is the label the compose CLI writes on every container
// it manages.
const composeProjectLabel = "com.docker.compose.project"

// composeServiceLabel carries the compose service name.
const composeServiceLabel = "com.docker.compose.service"

// ContainerStatus is one row of `dishctl status`.
type ContainerStatus struct {
	Name    string
	Service string
	Project string
	State   string
	Status  string
	Ports   []string
}

// ListStackContainers lists containers managed by the compose CLI,
// including stopped ones. When project is non-empty only that compose
// project's containers are returned.
func (c *Client) ListStackContainers(ctx context.Context, project string) ([]ContainerStatus, error) {
	f := filters.NewArgs()
	if project != "" {
		f.Add("label", composeProjectLabel+"="+project)
	} else {
		f.Add("label", composeProjectLabel)
	}

	containers, err := c.cli.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: f,
	})
	if err != nil {
		return nil, &OpError{Op: "ListStackContainers", Message: err.Error(), Err: ErrConnectionFailed}
	}

	statuses := make([]ContainerStatus, 0, len(containers))
	for _, ctr := range containers {
		name := ""
		if len(ctr.Names) > 0 {
			name = strings.TrimPrefix(ctr.Names[0], "/")
		}
		statuses = append(statuses, ContainerStatus{
			Name:    name,
			Service: ctr.Labels[composeServiceLabel],
			Project: ctr.Labels[composeProjectLabel],
			State:   ctr.State,
			Status:  ctr.Status,
			Ports:   FormatPorts(ctr.Ports),
		})
	}

	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses, nil
}

// FormatPorts renders port mappings the way `docker ps` does, deduplicated
// and sorted.
func FormatPorts(ports []container.Port) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range ports {
		target := nat.Port(fmt.Sprintf("%d/%s", p.PrivatePort, p.Type))
		var s string
		if p.PublicPort != 0 {
			ip := p.IP
			if ip == "" {
				ip = "0.0.0.0"
			}
			s = fmt.Sprintf("%s:%d->%s/%s", ip, p.PublicPort, target.Port(), target.Proto())
		} else {
			s = string(target)
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
