package stepper

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidValue is returned when a value is negative or above the maximum.
	ErrInvalidValue = errors.New("invalid progress value")
	// ErrInvalidMaximum is returned when a maximum is zero or negative.
	ErrInvalidMaximum = errors.New("invalid maximum")
	// ErrParseFailure is returned when field text is neither empty nor an integer.
	ErrParseFailure = errors.New("progress text is not a number")
)

// ValueError describes a rejected SetValue call.
type ValueError struct {
	// Value is the rejected value
	Value int
	// Maximum is the bound in force at the time, if HasMaximum is set
	Maximum    int
	HasMaximum bool
}

func (e *ValueError) Error() string {
	if e.Value < 0 {
		return fmt.Sprintf("progress %d cannot be negative", e.Value)
	}
	return fmt.Sprintf("progress %d cannot be greater than the maximum %d", e.Value, e.Maximum)
}

func (e *ValueError) Unwrap() error {
	return ErrInvalidValue
}

// MaximumError describes a rejected SetMaximum call.
type MaximumError struct {
	Maximum int
}

func (e *MaximumError) Error() string {
	return fmt.Sprintf("maximum %d must be greater than zero, use ClearMaximum to remove it", e.Maximum)
}

func (e *MaximumError) Unwrap() error {
	return ErrInvalidMaximum
}

// ParseError describes field text that could not be read as an integer.
type ParseError struct {
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q as progress: %v", e.Text, e.Err)
}

// Is reports ErrParseFailure so callers can match without the concrete type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParseFailure
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
