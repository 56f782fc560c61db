package errors

import (
	"errors"
	"fmt"
)

// InvalidNameReason describes why a table name was rejected
type InvalidNameReason int

const (
	// ReasonEmpty means no name was given
	ReasonEmpty InvalidNameReason = iota
	// ReasonDisallowedChar means the name contains something other than A-Z, a-z, 0-9 or _
	ReasonDisallowedChar
)

// InvalidNameError is returned when a table name fails scrubbing.
type InvalidNameError struct {
	Name   string
	Reason InvalidNameReason
}

func (e *InvalidNameError) Error() string {
	if e.Reason == ReasonEmpty {
		return "no table name given"
	}
	return fmt.Sprintf("invalid table name %q: only alphanumeric characters and underscores are allowed", e.Name)
}

// NewInvalidNameError creates an InvalidNameError for the given name and reason
func NewInvalidNameError(name string, reason InvalidNameReason) *InvalidNameError {
	return &InvalidNameError{Name: name, Reason: reason}
}

// IsInvalidName reports whether err is an InvalidNameError (even when wrapped).
func IsInvalidName(err error) bool {
	var nameErr *InvalidNameError
	return errors.As(err, &nameErr)
}
