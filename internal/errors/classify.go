package errors

import (
	"errors"
	"syscall"
)

// Category represents the type of error for display and handling purposes.
type Category int

const (
	// CategoryUnknown is the default for unclassified errors.
	CategoryUnknown Category = iota
	// CategoryUser indicates an error the user can fix (bad name, unknown county).
	CategoryUser
	// CategorySystem indicates a system-level error (missing seed, disk full).
	CategorySystem
	// CategoryNotFound is a lookup miss. It is an outcome, not a failure.
	CategoryNotFound
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryUser:
		return "user"
	case CategorySystem:
		return "system"
	case CategoryNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Classify determines the category of an error.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	if errors.Is(err, ErrCityNotFound) {
		return CategoryNotFound
	}
	if IsUserError(err) {
		return CategoryUser
	}
	if IsSystemError(err) || isSystemLevel(err) {
		return CategorySystem
	}

	return CategoryUnknown
}

// isSystemLevel checks if an error is a system-level error.
func isSystemLevel(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ENOSPC, syscall.EACCES, syscall.EPERM,
			syscall.ENOENT, syscall.EIO, syscall.EROFS:
			return true
		}
	}

	return errors.Is(err, ErrDiskFull) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrSeedMissing) ||
		errors.Is(err, ErrSeedMalformed) ||
		errors.Is(err, ErrPersistFailed)
}

// IsFatal reports whether the error must terminate the process.
// Only seed loading failures are fatal.
func IsFatal(err error) bool {
	return errors.Is(err, ErrSeedMissing) || errors.Is(err, ErrSeedMalformed)
}

// FormatByCategory returns a user-appropriate error message based on category.
func FormatByCategory(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	suggestion := GetSuggestion(err)

	switch Classify(err) {
	case CategoryUser:
		if suggestion != "" {
			return msg + "\n\nTry: " + suggestion
		}
		return msg
	case CategorySystem:
		if suggestion != "" {
			return "System error: " + msg + "\n\n" + suggestion
		}
		return "System error: " + msg
	default:
		return msg
	}
}
