package errors

import (
	"errors"
	"fmt"
)

// Exit codes for dockergen
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitConfigError  = 2
	ExitInvalidInput = 3
	ExitOutputExists = 4
	ExitTemplateBug  = 5
)

// DockergenError is the base error type for dockergen
type DockergenError struct {
	Code    int
	Message string
	Cause   error
}

func (e *DockergenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DockergenError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *DockergenError) ExitCode() int {
	return e.Code
}

// New creates a new DockergenError
func New(code int, message string) *DockergenError {
	return &DockergenError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a DockergenError
func Wrap(code int, message string, cause error) *DockergenError {
	return &DockergenError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ConfigError returns an error for configuration loading issues
func ConfigError(message string, cause error) *DockergenError {
	return Wrap(ExitConfigError, message, cause)
}

// ValidationFailed returns an error for a config that failed validation
func ValidationFailed(count int) *DockergenError {
	return New(ExitInvalidInput, fmt.Sprintf("configuration has %d validation error(s)", count))
}

// OutputExists returns an error for an output path that already exists
func OutputExists(path string) *DockergenError {
	return New(ExitOutputExists, fmt.Sprintf("file %s already exists (use --overwrite to replace it)", path))
}

// GenerationFailed returns an error for Dockerfile generation failures
func GenerationFailed(cause error) *DockergenError {
	return Wrap(ExitTemplateBug, "failed to generate Dockerfile", cause)
}

// WriteFailed returns an error for output file write failures
func WriteFailed(path string, cause error) *DockergenError {
	return Wrap(ExitGeneralError, fmt.Sprintf("failed to write %s", path), cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var dgErr *DockergenError
	if errors.As(err, &dgErr) {
		return dgErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
