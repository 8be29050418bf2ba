package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Konsultn-Engineering/enquery/connector"
	"github.com/Konsultn-Engineering/enquery/dialect"
	_ "modernc.org/sqlite"
)

type Provider struct{}

func init() {
	connector.Register("sqlite", &Provider{})
	connector.Register("sqlite3", &Provider{})
}

func (p *Provider) Connect(ctx context.Context, cfg connector.Config) (connector.Connection, error) {
	db, err := sql.Open("sqlite", cfg.SQLitePath)
	if err != nil {
		return nil, err
	}

	// Every connection to an in-memory database gets its own empty database.
	if isMemory(cfg.SQLitePath) {
		cfg.Pool.MaxOpen = 1
	}
	return connector.NewSQLConnection(db, dialect.NewSQLiteDialect(), cfg), nil
}

func (p *Provider) Dialect() dialect.Dialect {
	return dialect.NewSQLiteDialect()
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}
