package connector

import (
	"context"
	"database/sql"

	"github.com/Konsultn-Engineering/enquery/database"
	"github.com/Konsultn-Engineering/enquery/dialect"
)

// sqlConnection is a Connection over database/sql.
type sqlConnection struct {
	db      *sql.DB
	wrapped *database.SqlDatabase
	dialect dialect.Dialect
}

// NewSQLConnection wraps an open *sql.DB, applying pool and statement cache
// settings from cfg.
func NewSQLConnection(db *sql.DB, d dialect.Dialect, cfg Config) Connection {
	ApplyPool(db, cfg.Pool)
	return &sqlConnection{
		db:      db,
		wrapped: database.NewSqlDatabase(db, cfg.StatementCache),
		dialect: d,
	}
}

// ApplyPool copies pool limits onto db. Zero values keep the driver defaults.
func ApplyPool(db *sql.DB, pool PoolConfig) {
	if pool.MaxOpen > 0 {
		db.SetMaxOpenConns(pool.MaxOpen)
	}
	if pool.MaxIdle > 0 {
		db.SetMaxIdleConns(pool.MaxIdle)
	}
	if pool.MaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.MaxLifetime)
	}
	if pool.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(pool.MaxIdleTime)
	}
}

func (c *sqlConnection) Database() database.Database {
	return c.wrapped
}

func (c *sqlConnection) Dialect() dialect.Dialect {
	return c.dialect
}

func (c *sqlConnection) Health(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *sqlConnection) Stats() ConnectionStats {
	s := c.db.Stats()
	return ConnectionStats{
		OpenConnections: s.OpenConnections,
		InUse:           s.InUse,
		Idle:            s.Idle,
	}
}

func (c *sqlConnection) Close() error {
	return c.wrapped.Close()
}
