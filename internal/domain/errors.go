package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCredentialNotFound is returned by credential providers when the key is absent.
var ErrCredentialNotFound = errors.New("credential not found")

// ConfigurationError reports a missing argument, credential or setting.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// NewConfigurationError creates a ConfigurationError.
func NewConfigurationError(reason string, err error) *ConfigurationError {
	return &ConfigurationError{Reason: reason, Err: err}
}

// TransportError reports a failed or undecodable call to the remote API.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to query pull requests: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// SubprocessError reports a failed version-control operation.
type SubprocessError struct {
	Operation string
	Branch    string
	Err       error
}

func (e *SubprocessError) Error() string {
	var b strings.Builder
	b.WriteString(e.Operation)
	b.WriteString(" failed")
	if e.Branch != "" {
		fmt.Fprintf(&b, " for branch %s", e.Branch)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *SubprocessError) Unwrap() error { return e.Err }

// ConflictError is the stop condition raised when a merge leaves conflicted paths.
type ConflictError struct {
	Branch string
	Paths  []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("merge conflict while merging branch %s (%d conflicted paths)", e.Branch, len(e.Paths))
}

// IsConflict checks if an error is or wraps a ConflictError.
func IsConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}
