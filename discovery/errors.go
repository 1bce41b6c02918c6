package discovery

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCriteria is returned when a criteria field holds a value
	// outside its enumeration.
	ErrInvalidCriteria = errors.New("invalid criteria")
	// ErrInvalidSortKey is returned for a sort key other than date, title,
	// location or capacity. Errors matching it also match ErrInvalidCriteria.
	ErrInvalidSortKey = errors.New("invalid sort key")
	// ErrMalformedEvent is returned when a record lacks a mandatory field.
	ErrMalformedEvent = errors.New("malformed event")
)

// CriteriaError names the criteria field that failed validation.
type CriteriaError struct {
	Field string
	Value string
}

func (e *CriteriaError) Error() string {
	if e.Field == fieldSortKey {
		return fmt.Sprintf("%s: %q", ErrInvalidSortKey, e.Value)
	}
	return fmt.Sprintf("%s: %s=%q", ErrInvalidCriteria, e.Field, e.Value)
}

func (e *CriteriaError) Is(target error) bool {
	if target == ErrInvalidCriteria {
		return true
	}
	return target == ErrInvalidSortKey && e.Field == fieldSortKey
}

// EventError identifies a record that cannot be evaluated.
type EventError struct {
	ID    string
	Field string
}

func (e *EventError) Error() string {
	return fmt.Sprintf("%s: event %q has no %s", ErrMalformedEvent, e.ID, e.Field)
}

func (e *EventError) Unwrap() error {
	return ErrMalformedEvent
}
