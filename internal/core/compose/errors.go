// Package compose contains pure functions for validating Docker Compose
// configurations. This is part of the Functional Core - all functions are
// pure with no I/O; callers hand in file contents.
package compose

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput         = errors.New("compose config is empty")
	ErrInvalidYAML        = errors.New("invalid YAML syntax")
	ErrNoServices         = errors.New("compose config must define at least one service")
	ErrServiceNoImage     = errors.New("service must have image or build")
	ErrInvalidPort        = errors.New("invalid port configuration")
	ErrCircularDependency = errors.New("circular dependency detected")
)

// ValidationError wraps errors with context about where validation failed.
type ValidationError struct {
	Field   string // e.g. "services.backend.ports[0]"
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
