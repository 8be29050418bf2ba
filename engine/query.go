package engine

import (
	"context"
	"strings"

	"github.com/Konsultn-Engineering/enquery/builder"
	"github.com/Konsultn-Engineering/enquery/database"
	"go.uber.org/zap"
)

// Query builds a standard statement from opts and executes it. Built
// statements go straight to the database without classification.
func (e *Engine) Query(ctx context.Context, opts builder.Options) ([]database.Row, error) {
	if !e.Ready() {
		return nil, ErrNotReady
	}
	conn := e.Connection()
	if conn == nil {
		return nil, ErrNotReady
	}

	query, named, err := builder.Build(conn.Dialect(), opts)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("built statement", zap.String("sql", query), zap.Int("bindings", len(named)))
	return e.exec(ctx, query, named)
}

// SelectWhere selects rows of table where column equals value. With
// placeholders, a string value is taken as SQL text, normally a :name bound
// from placeholders. Otherwise value is bound as :value.
func (e *Engine) SelectWhere(ctx context.Context, column string, value any, table, specificColumn string, placeholders map[string]any) ([]database.Row, error) {
	named := make(map[string]any, len(placeholders)+1)
	for k, v := range placeholders {
		named[k] = v
	}

	operand := ":value"
	if s, ok := value.(string); ok && placeholders != nil {
		operand = s
	} else {
		named["value"] = value
	}

	opts := builder.Options{
		Table:        table,
		Where:        column + " = " + operand,
		Placeholders: named,
	}
	if specificColumn != "" {
		opts.Columns = []string{specificColumn}
	}
	return e.Query(ctx, opts)
}

// UpdateWhere sets the update columns on rows of table where column equals
// value. The value is bound as :value; placeholders are merged over it.
func (e *Engine) UpdateWhere(ctx context.Context, column string, value any, table string, update map[string]any, placeholders map[string]any) ([]database.Row, error) {
	named := map[string]any{"value": value}
	for k, v := range placeholders {
		named[strings.TrimPrefix(k, ":")] = v
	}

	return e.Query(ctx, builder.Options{
		Action:       builder.ActionUpdate,
		Table:        table,
		Where:        column + " = :value",
		Update:       update,
		Placeholders: named,
	})
}

// ColumnExists reports whether table has column.
func (e *Engine) ColumnExists(ctx context.Context, table, column string) (bool, error) {
	if table == "" || column == "" {
		return false, nil
	}
	conn := e.Connection()
	if conn == nil {
		return false, ErrNotReady
	}

	rows, err := e.exec(ctx, conn.Dialect().ColumnsLike(table, column), nil)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// TableExists reports whether table exists in the connected database.
func (e *Engine) TableExists(ctx context.Context, table string) (bool, error) {
	if table == "" {
		return false, nil
	}
	conn := e.Connection()
	if conn == nil {
		return false, ErrNotReady
	}

	rows, err := e.exec(ctx, conn.Dialect().TablesLike(table), nil)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}
