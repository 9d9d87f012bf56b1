// Package derrors provides custom error types for devcmd.
// Each type carries a stable code so callers can branch on the failure
// without matching message text.
package derrors

import (
	"fmt"
)

// DevcmdError is the base interface for all devcmd errors
type DevcmdError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all devcmd errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// MalformedLineError is returned when a line does not match the command grammar
type MalformedLineError struct {
	baseError
	Line string
}

// NewMalformedLineError creates a new malformed line error
func NewMalformedLineError(line string, message string) *MalformedLineError {
	return &MalformedLineError{
		baseError: baseError{
			code:    "MALFORMED_LINE",
			message: message,
		},
		Line: line,
	}
}

// UnknownCommandError is returned when a parsed command has no registered handler
type UnknownCommandError struct {
	baseError
	Command string
}

// NewUnknownCommandError creates a new unknown command error
func NewUnknownCommandError(command string, message string) *UnknownCommandError {
	return &UnknownCommandError{
		baseError: baseError{
			code:    "UNKNOWN_COMMAND",
			message: message,
		},
		Command: command,
	}
}

// ValidationError represents arguments rejected by a command's patterns
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    "VALIDATION_ERROR",
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

// ExecutionError represents a failure inside a command handler
type ExecutionError struct {
	baseError
	Command string
}

// NewExecutionError creates a new execution error
func NewExecutionError(command string, message string, cause error) *ExecutionError {
	return &ExecutionError{
		baseError: baseError{
			code:    "EXEC_ERROR",
			message: message,
			cause:   cause,
		},
		Command: command,
	}
}

// RegistrationError represents an invalid command or completion registration
type RegistrationError struct {
	baseError
	Command string
}

// NewRegistrationError creates a new registration error
func NewRegistrationError(command string, message string, cause error) *RegistrationError {
	return &RegistrationError{
		baseError: baseError{
			code:    "REGISTRATION_ERROR",
			message: message,
			cause:   cause,
		},
		Command: command,
	}
}

// AlreadyExistsError represents errors when a resource already exists
type AlreadyExistsError struct {
	baseError
	Resource string
}

// NewAlreadyExistsError creates a new already exists error
func NewAlreadyExistsError(resource string, message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		baseError: baseError{
			code:    "ALREADY_EXISTS",
			message: message,
		},
		Resource: resource,
	}
}

// ConfigurationError represents errors in configuration files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}
