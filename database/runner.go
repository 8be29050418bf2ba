package database

import (
	"context"

	"github.com/Konsultn-Engineering/enquery/dialect"
)

// Runner executes finished SQL with named bindings and returns its rows.
type Runner struct {
	db      Database
	dialect dialect.Dialect
}

func NewRunner(db Database, d dialect.Dialect) *Runner {
	return &Runner{db: db, dialect: d}
}

// Run binds named, executes query and collects every row. Failures are
// returned as *QueryError.
func (r *Runner) Run(ctx context.Context, query string, named map[string]any) ([]Row, error) {
	bound, args, err := Bind(r.dialect, query, named)
	if err != nil {
		return nil, WrapQueryError(err, query, nil, "bind")
	}

	rows, err := r.db.QueryContext(ctx, bound, args...)
	if err != nil {
		return nil, WrapQueryError(err, bound, args, "execution")
	}

	result, err := Collect(rows)
	if err != nil {
		return nil, WrapQueryError(err, bound, args, "scan")
	}
	return result, nil
}
