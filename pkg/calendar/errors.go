package calendar

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownProperty = errors.New("unknown property")
	ErrInvalidLength   = errors.New("invalid length")
	ErrInvalidRange    = errors.New("value out of range")
	ErrInvalidJSON     = errors.New("invalid JSON")
)

type UnknownPropertyError struct {
	Property string
}

func (e *UnknownPropertyError) Error() string {
	return "setting unknown property: " + e.Property
}

func (e *UnknownPropertyError) Unwrap() error {
	return ErrUnknownProperty
}

type InvalidLengthError struct {
	Property string
	Want     int
	Got      int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("%s must have exactly %d entries, got %d", e.Property, e.Want, e.Got)
}

func (e *InvalidLengthError) Unwrap() error {
	return ErrInvalidLength
}

// InvalidRangeError is returned for a first day of week that is either not an
// integer or not between 1 and 7. Value holds the offending input as given.
type InvalidRangeError struct {
	Property string
	Value    string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("%s must be an integer from %d to %d, got %q", e.Property, Monday, Sunday, e.Value)
}

func (e *InvalidRangeError) Unwrap() error {
	return ErrInvalidRange
}
