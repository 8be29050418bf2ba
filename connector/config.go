package connector

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents database connection configuration.
type Config struct {
	Driver         string            `json:"driver" yaml:"driver"`
	Host           string            `json:"host" yaml:"host"`
	Port           int               `json:"port" yaml:"port"`
	Database       string            `json:"database" yaml:"database"`
	Username       string            `json:"username" yaml:"username"`
	Password       string            `json:"password" yaml:"password"`
	SSLMode        string            `json:"ssl_mode" yaml:"ssl_mode"`
	SQLitePath     string            `json:"sqlite_path" yaml:"sqlite_path"`
	Params         map[string]string `json:"params" yaml:"params"`
	Pool           PoolConfig        `json:"pool" yaml:"pool"`
	StatementCache int               `json:"statement_cache" yaml:"statement_cache"`
	ConnectTimeout time.Duration     `json:"connect_timeout" yaml:"connect_timeout"`
	QueryTimeout   time.Duration     `json:"query_timeout" yaml:"query_timeout"`
	Retry          *RetryConfig      `json:"retry,omitempty" yaml:"retry,omitempty"`
}

// PoolConfig defines connection pool settings.
type PoolConfig struct {
	MaxOpen     int           `json:"max_open" yaml:"max_open"`
	MaxIdle     int           `json:"max_idle" yaml:"max_idle"`
	MaxLifetime time.Duration `json:"max_lifetime" yaml:"max_lifetime"`
	MaxIdleTime time.Duration `json:"max_idle_time" yaml:"max_idle_time"`
}

// RetryConfig defines connection retry behavior.
type RetryConfig struct {
	MaxRetries int           `json:"max_retries" yaml:"max_retries"`
	BaseDelay  time.Duration `json:"base_delay" yaml:"base_delay"`
	MaxDelay   time.Duration `json:"max_delay" yaml:"max_delay"`
	Backoff    float64       `json:"backoff" yaml:"backoff"`
}

// DefaultConfig returns a MySQL configuration for root on localhost.
func DefaultConfig() Config {
	return Config{
		Driver:         "mysql",
		Host:           "localhost",
		Username:       "root",
		StatementCache: 128,
	}
}

// LoadConfig reads a YAML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration names a driver and a database.
func (c Config) Validate() error {
	switch strings.ToLower(c.Driver) {
	case "":
		return &ConfigError{Field: "driver", Message: "is required"}
	case "sqlite", "sqlite3":
		if c.SQLitePath == "" {
			return &ConfigError{Field: "sqlite_path", Message: "is required for sqlite"}
		}
	default:
		if c.Database == "" {
			return &ConfigError{Field: "database", Message: "is required"}
		}
	}
	if c.Port < 0 || c.Port > 65535 {
		return &ConfigError{Field: "port", Message: fmt.Sprintf("invalid port %d", c.Port)}
	}
	return nil
}
