package connector

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a configuration that cannot be used.
	ErrInvalidConfig = errors.New("invalid connection configuration")

	// ErrUnsupportedDriver indicates that no provider is registered for the driver.
	ErrUnsupportedDriver = errors.New("unsupported driver")
)

// ConfigError represents a configuration problem found before connecting
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is reports ErrInvalidConfig as the error kind
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
