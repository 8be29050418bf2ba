package connector

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

type standardConnector struct {
	provider Provider
	config   Config
}

var globalManager = &Manager{
	providers: make(map[string]Provider),
}

type Manager struct {
	providers map[string]Provider
	mu        sync.RWMutex
}

// Register makes a provider available under a driver name.
func Register(name string, provider Provider) {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	globalManager.providers[strings.ToLower(name)] = provider
}

// Drivers returns the registered driver names, sorted.
func Drivers() []string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	names := make([]string, 0, len(globalManager.providers))
	for name := range globalManager.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New validates config and returns a connector for its driver.
func New(config Config) (Connector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	globalManager.mu.RLock()
	provider, ok := globalManager.providers[strings.ToLower(config.Driver)]
	globalManager.mu.RUnlock()
	if !ok {
		return nil, &ConfigError{
			Field:   "driver",
			Message: fmt.Sprintf("driver %q is not registered", config.Driver),
			Err:     ErrUnsupportedDriver,
		}
	}
	return &standardConnector{provider: provider, config: config}, nil
}

func (c *standardConnector) Connect(ctx context.Context) (Connection, error) {
	if c.config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.ConnectTimeout)
		defer cancel()
	}

	connect := func(ctx context.Context) (Connection, error) {
		conn, err := c.provider.Connect(ctx, c.config)
		if err != nil {
			return nil, err
		}
		if err := conn.Health(ctx); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return conn, nil
	}

	if c.config.Retry != nil && c.config.Retry.MaxRetries > 0 {
		conn, err := retryConnect(ctx, *c.config.Retry, connect)
		if err != nil {
			return nil, fmt.Errorf("failed to connect after %d retries: %w", c.config.Retry.MaxRetries, err)
		}
		return conn, nil
	}
	return connect(ctx)
}

func (c *standardConnector) Close() error {
	return nil
}
