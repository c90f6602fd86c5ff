// Package errors provides typed errors for the twm project.
//
// This package defines domain-specific error types that provide structured
// error information for configuration, workspace scanning and workspace
// selection. All error types implement the standard error interface and
// support errors.Is() and errors.As() from the standard library and
// cockroachdb/errors.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Field   string // Which config field has the issue
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
	}
	return "config error: " + e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// NewConfigErrorWithCause creates a new ConfigError with an underlying cause.
func NewConfigErrorWithCause(field, message string, cause error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Cause: cause}
}

// Scan operations recorded on a ScanError.
const (
	OpWalk    = "walk"    // reading a directory failed
	OpDecode  = "decode"  // the path is not valid UTF-8
	OpResolve = "resolve" // a search root could not be resolved
)

// ScanError records a single directory entry the scanner skipped.
// Scans never fail because of one; they are collected for reporting.
type ScanError struct {
	Path  string
	Op    string
	Cause error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scan %s %q skipped: %v", e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("scan %s %q skipped", e.Op, e.Path)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// NewScanError creates a new ScanError.
func NewScanError(op, path string, cause error) *ScanError {
	return &ScanError{Op: op, Path: path, Cause: cause}
}

// SelectionError represents failures picking or resolving a workspace.
type SelectionError struct {
	Operation string // e.g., "select", "find"
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *SelectionError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("workspace %s failed: %s", e.Operation, e.Message)
	}
	return "workspace selection error: " + e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *SelectionError) Unwrap() error {
	return e.Cause
}

// NewSelectionError creates a new SelectionError.
func NewSelectionError(operation, message string) *SelectionError {
	return &SelectionError{Operation: operation, Message: message}
}

// NewSelectionErrorWithCause creates a new SelectionError with an underlying cause.
func NewSelectionErrorWithCause(operation, message string, cause error) *SelectionError {
	return &SelectionError{Operation: operation, Message: message, Cause: cause}
}

// IsConfigError checks if an error or any error in its chain is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsScanError checks if an error or any error in its chain is a ScanError.
func IsScanError(err error) bool {
	var scanErr *ScanError
	return errors.As(err, &scanErr)
}

// IsSelectionError checks if an error or any error in its chain is a SelectionError.
func IsSelectionError(err error) bool {
	var selErr *SelectionError
	return errors.As(err, &selErr)
}

// Re-export commonly used functions from cockroachdb/errors for convenience.
// This allows consumers to use twmerrors.Wrap() instead of importing two packages.
var (
	// New creates a new error with the given message.
	New = errors.New

	// Newf creates a new error with formatted message.
	Newf = errors.Newf

	// Wrap wraps an error with additional context.
	Wrap = errors.Wrap

	// Wrapf wraps an error with formatted additional context.
	Wrapf = errors.Wrapf

	// Is reports whether any error in err's chain matches target.
	Is = errors.Is

	// As finds the first error in err's chain that matches target.
	As = errors.As

	// Cause returns the root cause of an error.
	Cause = errors.Cause
)
