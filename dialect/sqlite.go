package dialect

import "fmt"

type SQLite struct{}

func NewSQLiteDialect() Dialect {
	return &SQLite{}
}

func (s SQLite) Name() string {
	return "sqlite"
}

func (s SQLite) QuoteIdentifier(name string) string {
	return quoteIdentifier(name, '"')
}

func (s SQLite) Placeholder(n int) string {
	return "?"
}

func (s SQLite) RenderValue(v any) string {
	switch val := v.(type) {
	case bool:
		// Older SQLite builds have no TRUE/FALSE keywords.
		if val {
			return "1"
		}
		return "0"
	default:
		return renderValue(v, quoteString, func(b []byte) string {
			return fmt.Sprintf("X'%x'", b)
		})
	}
}

func (s SQLite) BackslashEscapes() bool {
	return false
}

func (s SQLite) Limit(offset, count int) string {
	return fmt.Sprintf("LIMIT %d OFFSET %d", count, offset)
}

func (s SQLite) Describe(table string) string {
	return "SELECT name, type, \"notnull\" FROM pragma_table_info(" + s.RenderValue(table) + ")"
}

func (s SQLite) TablesLike(table string) string {
	return "SELECT name FROM sqlite_master WHERE type = 'table' AND name = " + s.RenderValue(table)
}

func (s SQLite) ColumnsLike(table, column string) string {
	return "SELECT name FROM pragma_table_info(" + s.RenderValue(table) + ") WHERE name = " + s.RenderValue(column)
}
