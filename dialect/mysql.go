package dialect

import "fmt"

type MySQL struct{}

func NewMySQLDialect() Dialect {
	return &MySQL{}
}

func (m MySQL) Name() string {
	return "mysql"
}

func (m MySQL) QuoteIdentifier(name string) string {
	return quoteIdentifier(name, '`')
}

func (m MySQL) Placeholder(n int) string {
	return "?"
}

func (m MySQL) RenderValue(v any) string {
	return renderValue(v, quoteBackslashString, func(b []byte) string {
		return fmt.Sprintf("X'%x'", b)
	})
}

// BackslashEscapes is true for the default sql_mode, which lacks
// NO_BACKSLASH_ESCAPES.
func (m MySQL) BackslashEscapes() bool {
	return true
}

func (m MySQL) Limit(offset, count int) string {
	return fmt.Sprintf("LIMIT %d, %d", offset, count)
}

func (m MySQL) Describe(table string) string {
	return "DESCRIBE " + m.QuoteIdentifier(table)
}

func (m MySQL) TablesLike(table string) string {
	return "SHOW TABLES LIKE " + m.RenderValue(table)
}

func (m MySQL) ColumnsLike(table, column string) string {
	return "SHOW COLUMNS FROM " + m.QuoteIdentifier(table) + " LIKE " + m.RenderValue(column)
}
