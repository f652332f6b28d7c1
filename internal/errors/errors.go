// Package errors provides consistent error types for the mtplates CLI.
// It defines two main categories: UserError (fixable by user) and
// SystemError (storage or environment issues).
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common conditions.
var (
	ErrCityNotFound     = errors.New("city not found")
	ErrInvalidName      = errors.New("invalid name")
	ErrUnknownCounty    = errors.New("unknown county")
	ErrSeedMissing      = errors.New("seed dataset missing")
	ErrSeedMalformed    = errors.New("seed dataset malformed")
	ErrPersistFailed    = errors.New("failed to save entry")
	ErrDiskFull         = errors.New("disk full")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidBackend   = errors.New("invalid entry backend")
)

// UserError represents an error that the user can fix.
// Examples: a name with digits, a county that is not in Montana.
type UserError struct {
	Message    string // What happened
	Reason     string // Why it happened (optional)
	Suggestion string // How to fix it
	Field      string // The field/input that caused the error (optional)
	Value      string // The invalid value (optional)
	Cause      error  // Sentinel for errors.Is (optional)
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Field != "" && e.Value != "" {
		msg = fmt.Sprintf("%s: '%s'", e.Message, e.Value)
	}
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// NewUserError creates a new UserError.
func NewUserError(message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewValidationError creates a UserError for a name that failed the name policy.
func NewValidationError(field, value, reason string) *UserError {
	return &UserError{
		Message:    "Invalid " + field + " name",
		Reason:     reason,
		Field:      field,
		Value:      value,
		Suggestion: "Names may only contain letters, spaces, apostrophes, and hyphens.",
		Cause:      ErrInvalidName,
	}
}

// NewUnknownCountyError creates a UserError for a county outside the prefix table.
func NewUnknownCountyError(county, suggestion string) *UserError {
	if suggestion == "" {
		suggestion = "Use 'mtplates counties' to see the recognized Montana counties."
	}
	return &UserError{
		Message:    "Unknown county",
		Field:      "county",
		Value:      county,
		Suggestion: suggestion,
		Cause:      ErrUnknownCounty,
	}
}

// SystemError represents a system-level error that the user cannot directly fix.
// Examples: missing seed file, disk full, unwritable data directory.
type SystemError struct {
	Message string // What happened
	Cause   error  // The underlying error
	Op      string // The operation that failed (optional)
}

func (e *SystemError) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = fmt.Sprintf("%s during %s", e.Message, e.Op)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *SystemError) Unwrap() error {
	return e.Cause
}

// NewSystemError creates a new SystemError.
func NewSystemError(message string, cause error) *SystemError {
	return &SystemError{
		Message: message,
		Cause:   cause,
	}
}

// NewSystemErrorWithOp creates a new SystemError with operation context.
func NewSystemErrorWithOp(op, message string, cause error) *SystemError {
	return &SystemError{
		Message: message,
		Cause:   cause,
		Op:      op,
	}
}

// NewLoadError creates the fatal error returned when the seed dataset cannot be loaded.
// sentinel is ErrSeedMissing or ErrSeedMalformed.
func NewLoadError(path string, sentinel, cause error) *SystemError {
	wrapped := sentinel
	if cause != nil {
		wrapped = fmt.Errorf("%w: %w", sentinel, cause)
	}
	return &SystemError{
		Message: "cannot load seed dataset " + path,
		Cause:   wrapped,
		Op:      "load seed",
	}
}

// NewPersistError creates the error returned when an accepted entry could not be written.
func NewPersistError(path string, cause error) *SystemError {
	return &SystemError{
		Message: "cannot write " + path,
		Cause:   fmt.Errorf("%w: %w", ErrPersistFailed, cause),
		Op:      "append entry",
	}
}

// IsUserError checks if an error is a UserError.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}

// IsSystemError checks if an error is a SystemError.
func IsSystemError(err error) bool {
	var se *SystemError
	return errors.As(err, &se)
}

// AsUserError extracts a UserError from an error chain.
func AsUserError(err error) (*UserError, bool) {
	var ue *UserError
	ok := errors.As(err, &ue)
	return ue, ok
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
