package errors

import (
	"errors"
	"fmt"
)

// DuplicateRowError is returned when an insert hits the (NAME, DESCRIPTION)
// uniqueness constraint. The statement was rolled back by the engine and the
// transaction committed, so nothing was written.
type DuplicateRowError struct {
	Table string
	Value string
	Err   error
}

func (e *DuplicateRowError) Error() string {
	return fmt.Sprintf("%q entry could not be created in %s: all name entries must be unique", e.Value, e.Table)
}

// Unwrap returns the underlying engine error
func (e *DuplicateRowError) Unwrap() error {
	return e.Err
}

// NewDuplicateRowError creates a DuplicateRowError wrapping the engine's constraint error
func NewDuplicateRowError(table, value string, err error) *DuplicateRowError {
	return &DuplicateRowError{Table: table, Value: value, Err: err}
}

// IsDuplicateRow reports whether err is a DuplicateRowError (even when wrapped).
func IsDuplicateRow(err error) bool {
	var dupErr *DuplicateRowError
	return errors.As(err, &dupErr)
}
