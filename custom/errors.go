package custom

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatch indicates that no registered template matched the query.
	ErrNoMatch = errors.New("no custom query template matches")

	// ErrMalformedInput indicates that a template matched but a wildcard captured nothing.
	ErrMalformedInput = errors.New("unrecognised custom query expression")

	// ErrArity indicates a mismatch between wildcard count and handler parameters.
	ErrArity = errors.New("handler arity does not match wildcard count")

	// ErrNilHandler is returned when registering a template without a handler.
	ErrNilHandler = errors.New("custom query handler is nil")
)

// MalformedInputError describes a query that selected a template but left a
// wildcard without text.
type MalformedInputError struct {
	Query   string
	Pattern string
	// Group is the 1-based wildcard position that failed to capture.
	Group int
}

// Error implements the error interface
func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("unrecognised expression %q: wildcard %d of pattern %q captured nothing", e.Query, e.Group, e.Pattern)
}

// Is reports ErrMalformedInput as the error kind
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// ArityError describes a handler whose parameter count differs from the
// number of arguments it would receive.
type ArityError struct {
	Pattern string
	Want    int
	Got     int
}

// Error implements the error interface
func (e *ArityError) Error() string {
	return fmt.Sprintf("pattern %q: handler takes %d arguments, got %d", e.Pattern, e.Want, e.Got)
}

// Is reports ErrArity as the error kind
func (e *ArityError) Is(target error) bool {
	return target == ErrArity
}
