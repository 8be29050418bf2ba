package database

import (
	"errors"
	"fmt"
)

// ErrMissingBinding indicates a named placeholder without a value.
var ErrMissingBinding = errors.New("missing placeholder binding")

// BindError reports the placeholder that could not be bound.
type BindError struct {
	Name  string
	Query string
}

// Error implements the error interface
func (e *BindError) Error() string {
	return fmt.Sprintf("no value for placeholder :%s in %q", e.Name, e.Query)
}

// Is reports ErrMissingBinding as the error kind
func (e *BindError) Is(target error) bool {
	return target == ErrMissingBinding
}

// QueryError represents an error that occurred during query execution
type QueryError struct {
	Query   string
	Params  []any
	Err     error
	Context string
}

// Error implements the error interface
func (e *QueryError) Error() string {
	return fmt.Sprintf("query error in %s: %v (query: %s)", e.Context, e.Err, e.Query)
}

// Unwrap returns the underlying error
func (e *QueryError) Unwrap() error {
	return e.Err
}

// WrapQueryError wraps an error with query context
func WrapQueryError(err error, query string, params []any, context string) error {
	if err == nil {
		return nil
	}
	return &QueryError{
		Query:   query,
		Params:  params,
		Err:     err,
		Context: context,
	}
}
