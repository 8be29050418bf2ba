package database

import (
	"context"
	"database/sql"

	"github.com/Konsultn-Engineering/enquery/cache"
	"github.com/Konsultn-Engineering/enquery/utils"
)

// SqlDatabase implements Database for *sql.DB. Statements are prepared once
// and kept in an LRU cache keyed by their text.
type SqlDatabase struct {
	db    *sql.DB
	stmts *cache.StatementCache
}

// NewSqlDatabase creates a new SqlDatabase. A non-positive cacheSize
// disables statement caching.
func NewSqlDatabase(db *sql.DB, cacheSize int) *SqlDatabase {
	s := &SqlDatabase{db: db}
	if cacheSize > 0 {
		s.stmts = cache.NewStatementCache(cacheSize)
	}
	return s
}

// DB returns the wrapped handle.
func (s *SqlDatabase) DB() *sql.DB { return s.db }

// QueryContext executes a query with a context.
func (s *SqlDatabase) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if s.stmts == nil {
		rows, err = s.db.QueryContext(ctx, query, args...)
	} else {
		var stmt *sql.Stmt
		stmt, err = s.stmts.GetOrPrepare(ctx, utils.FingerprintString(query), s.db, query)
		if err != nil {
			return nil, err
		}
		rows, err = stmt.QueryContext(ctx, args...)
	}
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ExecContext executes a query without returning rows.
func (s *SqlDatabase) ExecContext(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// PingContext verifies the connection to the database is alive.
func (s *SqlDatabase) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases cached statements and closes the database.
func (s *SqlDatabase) Close() error {
	if s.stmts != nil {
		_ = s.stmts.Close()
	}
	return s.db.Close()
}

// Assert that SqlDatabase implements the Database interface.
var _ Database = (*SqlDatabase)(nil)
