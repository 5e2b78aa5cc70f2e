package clause

import (
	"fmt"

	"github.com/roach88/relmap/internal/schema"
)

// ErrInvalidArgument is the single error kind reported by clause constructors.
// It is the same sentinel as schema.ErrInvalidArgument.
var ErrInvalidArgument = schema.ErrInvalidArgument

// Error describes a clause that could not be constructed.
type Error struct {
	Op      string // constructor name, e.g. "NewInclusion"
	Message string
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
