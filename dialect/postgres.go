package dialect

import (
	"fmt"
	"strconv"
)

type Postgres struct{}

func NewPostgresDialect() Dialect {
	return &Postgres{}
}

func (p Postgres) Name() string {
	return "postgres"
}

func (p Postgres) QuoteIdentifier(name string) string {
	return quoteIdentifier(name, '"')
}

func (p Postgres) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func (Postgres) RenderValue(v any) string {
	return renderValue(v, quoteString, func(b []byte) string {
		return fmt.Sprintf("'\\x%x'::bytea", b)
	})
}

// BackslashEscapes is false under standard_conforming_strings, the default
// since PostgreSQL 9.1.
func (Postgres) BackslashEscapes() bool {
	return false
}

func (p Postgres) Limit(offset, count int) string {
	return fmt.Sprintf("LIMIT %d OFFSET %d", count, offset)
}

// Describe lists column metadata; Postgres has no DESCRIBE statement.
func (p Postgres) Describe(table string) string {
	return "SELECT column_name, data_type, is_nullable FROM information_schema.columns WHERE table_name = " +
		p.RenderValue(table) + " ORDER BY ordinal_position"
}

func (p Postgres) TablesLike(table string) string {
	return "SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = " +
		p.RenderValue(table)
}

func (p Postgres) ColumnsLike(table, column string) string {
	return "SELECT column_name FROM information_schema.columns WHERE table_name = " + p.RenderValue(table) +
		" AND column_name = " + p.RenderValue(column)
}
