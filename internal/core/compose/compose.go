package compose

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Summary Types
// =============================================================================

// Summary is the validated view of a compose configuration, decoupled from
// compose-go types.
type Summary struct {
	Services []Service
	Networks []string
	Volumes  []string
}

// Service is the subset of a compose service dishctl cares about for
// validation and reporting.
type Service struct {
	Name      string
	Image     string
	HasBuild  bool
	Ports     []Port
	DependsOn []string
}

// Port is a published port mapping.
type Port struct {
	Target    uint32
	Published uint32
	Protocol  string
}

// =============================================================================
// Validation
// =============================================================================

// Validate parses compose YAML and checks the structural rules dishctl
// enforces before trusting a file: syntax, at least one service, every
// service has an image or a build, no dependency cycles, sane ports.
func Validate(yamlContent string) (*Summary, error) {
	if strings.TrimSpace(yamlContent) == "" {
		return nil, ErrEmptyInput
	}

	project, err := load(yamlContent)
	if err != nil {
		return nil, err
	}

	if len(project.Services) == 0 {
		return nil, ErrNoServices
	}

	summary := &Summary{
		Services: make([]Service, 0, len(project.Services)),
		Networks: make([]string, 0, len(project.Networks)),
		Volumes:  make([]string, 0, len(project.Volumes)),
	}

	for _, svc := range project.Services {
		converted, err := convertService(svc)
		if err != nil {
			return nil, err
		}
		summary.Services = append(summary.Services, converted)
	}

	if err := detectCycles(summary.Services); err != nil {
		return nil, err
	}
	if err := validatePorts(summary.Services); err != nil {
		return nil, err
	}

	for name := range project.Networks {
		summary.Networks = append(summary.Networks, name)
	}
	for name := range project.Volumes {
		summary.Volumes = append(summary.Volumes, name)
	}

	return summary, nil
}

// load parses YAML with compose-go from an in-memory document.
func load(yamlContent string) (*types.Project, error) {
	var dict map[string]interface{}
	if err := yaml.Unmarshal([]byte(yamlContent), &dict); err != nil {
		return nil, newValidationError("", "invalid YAML syntax", ErrInvalidYAML)
	}
	if dict == nil {
		return nil, newValidationError("", "invalid YAML syntax", ErrInvalidYAML)
	}

	project, err := loader.LoadWithContext(context.Background(), types.ConfigDetails{
		ConfigFiles: []types.ConfigFile{
			{
				Content: []byte(yamlContent),
				Config:  dict,
			},
		},
	}, func(opts *loader.Options) {
		opts.SetProjectName("dishctl-validate", false)
		opts.SkipInterpolation = false
		// Structural rules (image-or-build, cycles, ports) are enforced by
		// our own checks below, so the loader only has to decode. That
		// keeps error classification independent of loader error text.
		opts.SkipValidation = true
		// In-memory document: no path resolution, no external files.
		opts.SkipNormalization = true
		opts.SkipExtends = true
	})
	if err != nil {
		return nil, newValidationError("", err.Error(), ErrInvalidYAML)
	}

	return project, nil
}

func convertService(svc types.ServiceConfig) (Service, error) {
	service := Service{
		Name:      svc.Name,
		Image:     svc.Image,
		HasBuild:  svc.Build != nil,
		DependsOn: make([]string, 0, len(svc.DependsOn)),
	}

	if service.Image == "" && !service.HasBuild {
		return Service{}, newValidationError("services."+svc.Name, "service must have image or build", ErrServiceNoImage)
	}

	for _, p := range svc.Ports {
		var published uint32
		if p.Published != "" {
			if pub, err := strconv.ParseUint(p.Published, 10, 32); err == nil {
				published = uint32(pub)
			}
		}
		service.Ports = append(service.Ports, Port{
			Target:    p.Target,
			Published: published,
			Protocol:  p.Protocol,
		})
	}

	for dep := range svc.DependsOn {
		service.DependsOn = append(service.DependsOn, dep)
	}

	return service, nil
}

// detectCycles runs a DFS over the depends_on graph.
func detectCycles(services []Service) error {
	deps := make(map[string][]string, len(services))
	for _, svc := range services {
		deps[svc.Name] = svc.DependsOn
	}

	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	var hasCycle func(node string) bool
	hasCycle = func(node string) bool {
		visited[node] = true
		recStack[node] = true

		for _, dep := range deps[node] {
			if dep == node {
				return true
			}
			if !visited[dep] {
				if hasCycle(dep) {
					return true
				}
			} else if recStack[dep] {
				return true
			}
		}

		recStack[node] = false
		return false
	}

	for _, svc := range services {
		if !visited[svc.Name] {
			if hasCycle(svc.Name) {
				return ErrCircularDependency
			}
		}
	}

	return nil
}

func validatePorts(services []Service) error {
	for _, svc := range services {
		for i, port := range svc.Ports {
			field := fmt.Sprintf("services.%s.ports[%d]", svc.Name, i)
			if port.Target == 0 {
				return newValidationError(field, "target port cannot be 0", ErrInvalidPort)
			}
			if port.Target > 65535 {
				return newValidationError(field, "target port must be <= 65535", ErrInvalidPort)
			}
			if port.Published > 65535 {
				return newValidationError(field, "published port must be <= 65535", ErrInvalidPort)
			}
		}
	}
	return nil
}
