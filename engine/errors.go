package engine

import "errors"

var (
	// ErrNotReady is returned by Build, Run and the query helpers before
	// Setup or Attach has completed.
	ErrNotReady = errors.New("engine: setup has not completed")

	// ErrUnrecognized is returned when input starts with a SQL verb but does
	// not have the shape of a statement. Nothing is executed.
	ErrUnrecognized = errors.New("engine: unrecognized statement")
)
