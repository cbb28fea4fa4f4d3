package validation

import "fmt"

// Validation failures all carry the offending field and render as a
// single human message. The HTTP layer maps anything satisfying Is to a
// 422; everything else stays a 500.

type validationError interface {
	error
	validation()
}

// Is reports whether err is one of the typed validation errors.
func Is(err error) bool {
	_, ok := err.(validationError)
	return ok
}

// ChronologyError: an end bound before (or at, when strict) its start.
type ChronologyError struct {
	Field  string
	Strict bool
}

func (e *ChronologyError) Error() string {
	if e.Strict {
		return fmt.Sprintf("%s must be after the start of the range", e.Field)
	}
	return fmt.Sprintf("%s must not be before the start of the range", e.Field)
}

func (e *ChronologyError) validation() {}

// FormatError: a time or date bound that does not parse. The wrapped
// error carries the offending value.
type FormatError struct {
	Field string
	Err   error
}

func (e *FormatError) Error() string {
	return e.Err.Error()
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) validation() {}

// DuplicateCombinationError: a composite key already exists.
type DuplicateCombinationError struct {
	Field string
}

func (e *DuplicateCombinationError) Error() string {
	return fmt.Sprintf("%s has already been taken for this combination", e.Field)
}

func (e *DuplicateCombinationError) validation() {}

// ConflictError: a room/day time range intersects an existing one.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflicts with an existing schedule in this room on this day", e.Field)
}

func (e *ConflictError) validation() {}

// ReferenceNotFoundError: a foreign key target is missing or has the
// wrong role.
type ReferenceNotFoundError struct {
	Field string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("the selected %s is invalid", e.Field)
}

func (e *ReferenceNotFoundError) validation() {}

// InactiveSessionError: attendance recorded against a session whose
// date window does not contain today.
type InactiveSessionError struct{}

func (e *InactiveSessionError) Error() string {
	return "the session is not active"
}

func (e *InactiveSessionError) validation() {}
