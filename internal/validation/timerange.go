package validation

import (
	"fmt"
	"time"
)

const (
	TimeLayout = "15:04:05"
	DateLayout = "2006-01-02"
)

// ParseTimeOfDay parses an HH:MM:SS 24-hour clock value.
func ParseTimeOfDay(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t, nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ValidateTimeRange checks chronology of an HH:MM:SS pair. With strict
// set, zero-length ranges are rejected too. Either side empty skips the
// check so partial updates can defer it until both bounds are known.
func ValidateTimeRange(field, start, end string, strict bool) error {
	if start == "" || end == "" {
		return nil
	}
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return &FormatError{Field: field, Err: err}
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return &FormatError{Field: field, Err: err}
	}
	return validateRange(field, s, e, strict)
}

// ValidateDateRange is ValidateTimeRange for YYYY-MM-DD pairs. Nil
// pointers skip the check.
func ValidateDateRange(field string, start, end *string, strict bool) error {
	if start == nil || end == nil {
		return nil
	}
	s, err := ParseDate(*start)
	if err != nil {
		return &FormatError{Field: field, Err: err}
	}
	e, err := ParseDate(*end)
	if err != nil {
		return &FormatError{Field: field, Err: err}
	}
	return validateRange(field, s, e, strict)
}

func validateRange(field string, start, end time.Time, strict bool) error {
	if end.Before(start) {
		return &ChronologyError{Field: field, Strict: strict}
	}
	if strict && !end.After(start) {
		return &ChronologyError{Field: field, Strict: strict}
	}
	return nil
}
