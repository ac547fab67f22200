package calendar

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when a year has no epoch record.
	ErrOutOfRange = errors.New("date outside supported range")

	// ErrPhaseResolution is returned when a day offset falls outside every
	// bracket of its era's ladder. It means the tables and the arithmetic
	// disagree and is not recoverable by the caller.
	ErrPhaseResolution = errors.New("lunar phase unresolvable")

	// ErrInvalidDateTime is returned for malformed civil date-times.
	ErrInvalidDateTime = errors.New("invalid civil date-time")
)

// RangeError reports the Buddhist Era year that had no epoch record.
type RangeError struct {
	BEYear int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("BE %d: %v (supported BE %d-%d)",
		e.BEYear, ErrOutOfRange, FirstSupportedYear, LastSupportedYear)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// PhaseError reports the era and offset that no bracket matched.
type PhaseError struct {
	Era    Era
	Offset int
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("era %d offset %d: %v", e.Era, e.Offset, ErrPhaseResolution)
}

func (e *PhaseError) Unwrap() error { return ErrPhaseResolution }

// IsOutOfRange checks if an error is an out-of-range error.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

// IsInvalid reports whether err came from malformed input.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidDateTime)
}

// IsUnconvertible reports whether err means the date cannot be converted,
// as opposed to being malformed.
func IsUnconvertible(err error) bool {
	return errors.Is(err, ErrOutOfRange) || errors.Is(err, ErrPhaseResolution)
}
