// Package errors provides structured error handling for portsim operations.
// It defines error codes and the error types surfaced by the scan engine,
// the configuration layer and the export adapters.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents different types of errors that can occur.
type ErrorCode string

const (
	// General errors.
	CodeUnknown       ErrorCode = "UNKNOWN"
	CodeValidation    ErrorCode = "VALIDATION"
	CodeConfiguration ErrorCode = "CONFIGURATION"
	CodeNotFound      ErrorCode = "NOT_FOUND"

	// Scan input errors.
	CodeTargetInvalid ErrorCode = "TARGET_INVALID"
	CodePortRange     ErrorCode = "PORT_RANGE"
	CodePortOrder     ErrorCode = "PORT_ORDER"
	CodeInvalidOption ErrorCode = "INVALID_OPTION"

	// Adapter errors.
	CodeExportFailed ErrorCode = "EXPORT_FAILED"
)

// ValidationError is returned when user supplied input is rejected.
// It never reflects a failure of a running scan.
type ValidationError struct {
	Code    ErrorCode
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewValidationError creates a validation error for a specific field.
func NewValidationError(code ErrorCode, message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		Code:    code,
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Code    ErrorCode
	Message string
	Field   string
	Value   interface{}
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigFieldError creates a configuration error for a specific field.
func NewConfigFieldError(code ErrorCode, message, field string, value interface{}) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
		Field:   field,
		Value:   value,
	}
}

// WrapConfigError wraps an existing error as a configuration error.
func WrapConfigError(code ErrorCode, message string, err error) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// ExportError is reported by export and clipboard adapters. It is local to the
// adapter and carries no information about engine state.
type ExportError struct {
	Code        ErrorCode
	Message     string
	Destination string
	Cause       error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	if e.Destination != "" {
		return fmt.Sprintf("[%s] %s (destination: %s)", e.Code, e.Message, e.Destination)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ExportError) Unwrap() error {
	return e.Cause
}

// WrapExportError wraps an adapter failure.
func WrapExportError(message, destination string, err error) *ExportError {
	return &ExportError{
		Code:        CodeExportFailed,
		Message:     message,
		Destination: destination,
		Cause:       err,
	}
}

// Utility functions for common error operations

// GetCode extracts the error code from an error chain if it has one.
func GetCode(err error) ErrorCode {
	var validationErr *ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.Code
	}
	var configErr *ConfigError
	if stderrors.As(err, &configErr) {
		return configErr.Code
	}
	var exportErr *ExportError
	if stderrors.As(err, &exportErr) {
		return exportErr.Code
	}
	return CodeUnknown
}

// IsCode checks if an error has a specific error code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && GetCode(err) == code
}

// IsValidation reports whether err is a user input validation error.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return stderrors.As(err, &validationErr)
}

// Common error creation functions

// ErrTargetRequired creates an error for a missing scan target.
func ErrTargetRequired() *ValidationError {
	return NewValidationError(CodeTargetInvalid, "Target IP/Hostname is required", "target", "")
}

// ErrInvalidTarget creates an error for a target that is neither an IP nor a hostname.
func ErrInvalidTarget(target string) *ValidationError {
	return NewValidationError(CodeTargetInvalid, "Target must be an IP address or hostname", "target", target)
}

// ErrPortOutOfRange creates an error for ports outside 1-65535.
func ErrPortOutOfRange(field string, port int) *ValidationError {
	return NewValidationError(CodePortRange, "Ports must be between 1 and 65535", field, port)
}

// ErrPortOrder creates an error for a start port above the end port.
func ErrPortOrder(start, end int) *ValidationError {
	return NewValidationError(CodePortOrder, "Start port must be less than or equal to end port",
		"port_range", fmt.Sprintf("%d-%d", start, end))
}

// ErrInvalidOption creates an error for an unknown enumerated value.
func ErrInvalidOption(field, value string) *ValidationError {
	return NewValidationError(CodeInvalidOption, fmt.Sprintf("Invalid value %q", value), field, value)
}

// ErrConfigInvalid creates an error for invalid configuration.
func ErrConfigInvalid(field string, value interface{}) *ConfigError {
	return NewConfigFieldError(CodeValidation, "Invalid configuration value", field, value)
}
