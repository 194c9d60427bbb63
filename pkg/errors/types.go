package errors

import (
	"errors"
	"fmt"
)

// Exit codes for scripting integration.
// These codes allow scripts to distinguish between different failure modes.
const (
	// ExitSuccess indicates the report was produced.
	ExitSuccess = 0

	// ExitFailure indicates a critical error occurred (I/O, rendering, collaborator failure).
	ExitFailure = 2

	// ExitConfigError indicates a configuration or inventory input error.
	// The command could not proceed due to invalid config or malformed inventory data.
	ExitConfigError = 3
)

// ExitError represents a command termination with a specific exit code.
//
// Use this error when a command needs to exit with a non-zero status
// while providing context about what went wrong.
//
// Fields:
//   - Code: Exit code (use constants ExitSuccess, ExitFailure, ExitConfigError)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
type ExitError struct {
	// Code is the exit code for the command.
	Code int

	// Message is a human-readable description of why the command failed.
	Message string

	// Err is the underlying error that caused this exit.
	// May be nil if no underlying error exists.
	Err error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise returns the underlying error's
// message, or a default message with the exit code.
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Parameters:
//   - code: Exit code (use ExitSuccess, ExitFailure, ExitConfigError)
//   - err: Underlying error, may be nil
//
// Returns:
//   - *ExitError: New exit error
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// NewExitErrorf creates an ExitError with the given code and formatted message.
//
// Parameters:
//   - code: Exit code
//   - format: Printf-style format string
//   - args: Format arguments
//
// Returns:
//   - *ExitError: New exit error with formatted message
func NewExitErrorf(code int, format string, args ...interface{}) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// GetExitCode extracts the exit code from an error.
//
// If err is nil, returns ExitSuccess.
// If err is an ExitError, returns its code.
// If err is an InvalidInputError, returns ExitConfigError.
// Otherwise returns ExitFailure.
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: Exit code
//
// Example:
//
//	code := errors.GetExitCode(err)
//	os.Exit(code)
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if IsInvalidInput(err) {
		return ExitConfigError
	}

	return ExitFailure
}

// IsExitError checks if err is an ExitError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ExitError: The ExitError if err is one, nil otherwise
//   - bool: true if err is an ExitError
func IsExitError(err error) (*ExitError, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}

// InvalidInputError reports malformed inventory data.
//
// It is the single error kind raised when an inventory entry does not have
// the expected shape: a chain that is not a mapping, a tracked entry that is
// not a (version, dev-label) pair, a duplicate location key and so on. The
// report core never coerces such input.
//
// Fields:
//   - Package: Name of the offending package; empty for document-level problems
//   - Field: The inventory field that is malformed (e.g., "packages", "tracking.versions")
//   - Reason: What is wrong with it
//
// Example:
//
//	return &InvalidInputError{
//	    Package: "plone.api",
//	    Field:   "tracking.versions",
//	    Reason:  "expected [version, dev-label] pair",
//	}
type InvalidInputError struct {
	// Package is the name of the affected package.
	Package string

	// Field is the inventory field that failed to decode or validate.
	Field string

	// Reason explains why the input was rejected.
	Reason string
}

// Error implements the error interface.
//
// Formats the message as "invalid inventory input: package: field: reason",
// omitting the parts that are not set.
func (e *InvalidInputError) Error() string {
	msg := "invalid inventory input"
	if e.Package != "" {
		msg += ": " + e.Package
	}
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// NewInvalidInputError creates an InvalidInputError with the given details.
//
// Parameters:
//   - pkg: Name of the package (optional)
//   - field: The offending inventory field
//   - reason: Why the input is invalid
//
// Returns:
//   - *InvalidInputError: New invalid input error
func NewInvalidInputError(pkg, field, reason string) *InvalidInputError {
	return &InvalidInputError{Package: pkg, Field: field, Reason: reason}
}

// NewInvalidInputErrorf creates an InvalidInputError with a formatted reason.
func NewInvalidInputErrorf(pkg, field, format string, args ...interface{}) *InvalidInputError {
	return &InvalidInputError{Package: pkg, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsInvalidInputError checks if err is an InvalidInputError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *InvalidInputError: The InvalidInputError if err is one, nil otherwise
//   - bool: true if err is an InvalidInputError
func IsInvalidInputError(err error) (*InvalidInputError, bool) {
	var iie *InvalidInputError
	if errors.As(err, &iie) {
		return iie, true
	}
	return nil, false
}

// IsInvalidInput reports whether the error indicates malformed inventory input.
// This is a convenience function for checking InvalidInputError without getting the value.
func IsInvalidInput(err error) bool {
	_, ok := IsInvalidInputError(err)
	return ok
}
