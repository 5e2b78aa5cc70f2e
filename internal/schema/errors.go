package schema

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the single error kind of the schema layer.
// Every construction-time violation wraps it, so callers can test with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// Error describes a rejected construction.
type Error struct {
	Op      string // constructor that rejected the input, e.g. "LengthOf"
	Message string // human-readable reason
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidArgument.
func (e *Error) Unwrap() error {
	return ErrInvalidArgument
}

func invalidf(op, format string, args ...any) *Error {
	return &Error{Op: op, Message: fmt.Sprintf(format, args...)}
}
