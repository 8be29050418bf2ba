package dialect

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Dialect renders the database-specific parts of generated SQL.
type Dialect interface {
	Name() string
	QuoteIdentifier(name string) string
	Placeholder(n int) string
	// RenderValue writes v as a SQL literal. Built statements bind values
	// instead; literals are only rendered into catalog lookups.
	RenderValue(v any) string
	// BackslashEscapes reports whether a backslash escapes the next
	// character inside string literals.
	BackslashEscapes() bool
	// Limit renders a row window that skips offset rows and returns count.
	Limit(offset, count int) string
	Describe(table string) string
	// TablesLike returns a statement yielding rows only when table exists.
	TablesLike(table string) string
	// ColumnsLike returns a statement yielding rows only when column exists in table.
	ColumnsLike(table, column string) string
}

// ForDriver returns the dialect used by a connector driver name.
func ForDriver(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "mysql", "mariadb":
		return NewMySQLDialect(), nil
	case "tidb":
		return NewTiDBDialect(), nil
	case "postgres", "postgresql", "pgx":
		return NewPostgresDialect(), nil
	case "sqlite", "sqlite3":
		return NewSQLiteDialect(), nil
	default:
		return nil, fmt.Errorf("no dialect for driver %q", driver)
	}
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

var backslashQuoter = strings.NewReplacer(`\`, `\\`, "'", "''", "\x00", `\0`)

// quoteBackslashString quotes s for servers that read \ as an escape.
func quoteBackslashString(s string) string {
	return "'" + backslashQuoter.Replace(s) + "'"
}

func quoteIdentifier(name string, quote byte) string {
	q := string(quote)
	return q + strings.ReplaceAll(name, q, q+q) + q
}

// renderValue covers the literals every dialect writes the same way. quote
// renders strings and bytes renders []byte values.
func renderValue(v any, quote func(string) string, bytes func([]byte) string) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return quote(val)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64)
	case time.Time:
		return quote(val.Format("2006-01-02 15:04:05.000000"))
	case []byte:
		return bytes(val)
	default:
		return quote(fmt.Sprint(val))
	}
}
