// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrNoData        = errors.New("no data available")
	ErrEmptyHistory  = errors.New("history is empty")
	ErrMetalNotFound = errors.New("metal not found")
	ErrRuleNotFound  = errors.New("alert rule not found")
	ErrInvalidRule   = errors.New("invalid alert rule")
	ErrStoreClosed   = errors.New("store is closed")
	ErrConfigInvalid = errors.New("invalid configuration")
)

// TransportError represents a failed interaction with the quote source.
// It surfaces as a single human-readable error state; computations that do
// not need the missing data proceed.
type TransportError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("quote source %s returned status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("quote source %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a new TransportError.
func NewTransportError(endpoint string, status int, err error) *TransportError {
	return &TransportError{Endpoint: endpoint, Status: status, Err: err}
}

// ExportError represents a failure while building or writing a report.
type ExportError struct {
	Format string
	Stage  string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Stage, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// NewExportError creates a new ExportError.
func NewExportError(format, stage string, err error) *ExportError {
	return &ExportError{Format: format, Stage: stage, Err: err}
}

// DispatchError represents a notification channel failure. Dispatch failures
// are logged and swallowed; they never roll back an alert cooldown.
type DispatchError struct {
	Channel string
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch error [%s]: %v", e.Channel, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// NewDispatchError creates a new DispatchError.
func NewDispatchError(channel string, err error) *DispatchError {
	return &DispatchError{Channel: channel, Err: err}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
