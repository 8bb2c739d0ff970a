package apperrors

import (
	"errors"
	"fmt"
)

var (
	// Input errors
	ErrMissingField = errors.New("missing required field")
	ErrInvalidValue = errors.New("invalid value")

	// Aggregate errors
	ErrNoData = errors.New("no data")

	// Source / config errors
	ErrUnknownSource = errors.New("unknown data source")
	ErrUnknownChart  = errors.New("unknown chart")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid token")
)

// MissingFieldError names the required column (or document field) that was absent.
type MissingFieldError struct {
	Field string
	Row   int // 0 when the whole column is missing
}

func (e *MissingFieldError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s: %s (row %d)", ErrMissingField, e.Field, e.Row)
	}
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

func NewMissingFieldError(field string, row int) error {
	return &MissingFieldError{Field: field, Row: row}
}

// InvalidValueError is returned when a required score is not numeric.
type InvalidValueError struct {
	Field string
	Row   int
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s for %s (row %d): %q", ErrInvalidValue, e.Field, e.Row, e.Value)
}

func (e *InvalidValueError) Unwrap() error {
	return ErrInvalidValue
}

func NewInvalidValueError(field string, row int, value string) error {
	return &InvalidValueError{Field: field, Row: row, Value: value}
}

// IsNoData reports whether err means an empty record set reached an aggregate.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData)
}
