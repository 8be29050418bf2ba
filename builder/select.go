package builder

import (
	"strings"

	"github.com/Konsultn-Engineering/enquery/dialect"
)

type SelectBuilder struct {
	dialect dialect.Dialect
	table   string
	columns []string
	where   string
	orderBy string
	sort    string
	limit   *int
	offset  int
}

func NewSelect(d dialect.Dialect, table string, columns []string) *SelectBuilder {
	return &SelectBuilder{
		dialect: d,
		table:   table,
		columns: columns,
	}
}

// Where sets the condition text. Values belong in :name placeholders bound
// by the executor.
func (b *SelectBuilder) Where(cond string) *SelectBuilder {
	b.where = cond
	return b
}

func (b *SelectBuilder) Order(order string) *SelectBuilder {
	b.orderBy = order
	return b
}

// Sort appends a bare ASC/DESC after the ORDER BY expression.
func (b *SelectBuilder) Sort(direction string) *SelectBuilder {
	b.sort = strings.ToUpper(strings.TrimSpace(direction))
	return b
}

func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = &n
	return b
}

func (b *SelectBuilder) Offset(n int) *SelectBuilder {
	b.offset = n
	return b
}

func (b *SelectBuilder) Build() string {
	var sb strings.Builder

	columns := b.columns
	if len(columns) == 0 {
		columns = []string{"*"}
	}

	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	if b.where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(b.where)
	}

	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}

	if b.sort != "" {
		sb.WriteString(" ")
		sb.WriteString(b.sort)
	}

	if b.limit != nil {
		sb.WriteString(" ")
		sb.WriteString(b.dialect.Limit(b.offset, *b.limit))
	}

	return sb.String()
}
