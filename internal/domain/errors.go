// Package domain contains domain errors used throughout the application.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrDuplicateEnvKey   = errors.New("environment variable already defined")
	ErrEmptyEnvKey       = errors.New("environment variable key cannot be empty")
	ErrSpawnFailed       = errors.New("failed to spawn terminal process")
	ErrHubNotRunning     = errors.New("event hub is not running")
	ErrSubscriberClosed  = errors.New("subscriber is closed")
	ErrSnippetNotFound   = errors.New("snippet not found")
)

// SpawnError describes a failed process spawn for a session.
type SpawnError struct {
	SessionID string
	Shell     string
	Err       error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %s (shell %s): %v", e.SessionID, e.Shell, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// NewSpawnError creates a new SpawnError.
func NewSpawnError(sessionID, shell string, err error) *SpawnError {
	return &SpawnError{SessionID: sessionID, Shell: shell, Err: err}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
