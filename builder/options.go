package builder

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Konsultn-Engineering/enquery/dialect"
)

// Actions understood by Build.
const (
	ActionSelect   = "SELECT"
	ActionInsert   = "INSERT"
	ActionUpdate   = "UPDATE"
	ActionDelete   = "DELETE"
	ActionDescribe = "DESCRIBE"
	ActionExplain  = "EXPLAIN"
	ActionCustom   = "CUSTOM"
)

var (
	ErrUnsupportedAction = errors.New("unsupported action")
	ErrMissingTable      = errors.New("table is required")
	ErrMissingWhere      = errors.New("delete requires a where clause")
	ErrMissingCustom     = errors.New("custom SQL is required")
	ErrNoValues          = errors.New("insert requires values")
	ErrNoUpdates         = errors.New("update requires at least one column")
)

// Options describe one standard statement.
type Options struct {
	// Action defaults to SELECT; case and surrounding space are ignored.
	Action  string
	Columns []string
	Table   string
	Where   string
	OrderBy string
	Sort    string
	// LimitStart rows are skipped and at most LimitEnd returned. No limit is
	// rendered unless LimitEnd is positive.
	LimitStart int
	LimitEnd   int
	Values     []any
	Update     map[string]any
	// Custom is the statement explained by EXPLAIN or run as is by CUSTOM.
	Custom string
	// Placeholders binds the :name placeholders used in the other fields.
	Placeholders map[string]any
}

// Build renders opts as SQL for d. INSERT and UPDATE values are never
// inlined: each one that is not already a :name placeholder is bound under a
// generated name. The returned map holds opts.Placeholders plus those values
// and is what the executor binds against.
func Build(d dialect.Dialect, opts Options) (string, map[string]any, error) {
	action := strings.ToUpper(strings.TrimSpace(opts.Action))
	if action == "" {
		action = ActionSelect
	}

	switch action {
	case ActionExplain:
		if opts.Custom == "" {
			return "", nil, fmt.Errorf("%s: %w", action, ErrMissingCustom)
		}
		return "EXPLAIN " + opts.Custom, opts.Placeholders, nil
	case ActionCustom:
		if opts.Custom == "" {
			return "", nil, fmt.Errorf("%s: %w", action, ErrMissingCustom)
		}
		return opts.Custom, opts.Placeholders, nil
	}

	if opts.Table == "" {
		return "", nil, fmt.Errorf("%s: %w", action, ErrMissingTable)
	}

	switch action {
	case ActionSelect:
		qb := NewSelect(d, opts.Table, opts.Columns).
			Where(opts.Where).
			Order(opts.OrderBy).
			Sort(opts.Sort)
		if opts.LimitEnd > 0 {
			qb = qb.Offset(opts.LimitStart).Limit(opts.LimitEnd)
		}
		return qb.Build(), opts.Placeholders, nil

	case ActionInsert:
		if len(opts.Values) == 0 {
			return "", nil, ErrNoValues
		}
		b := newBindings(opts.Placeholders)
		values := make([]string, len(opts.Values))
		for i, v := range opts.Values {
			values[i] = b.operand(v)
		}
		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			opts.Table, strings.Join(opts.Columns, ", "), strings.Join(values, ", "))
		return query, b.named, nil

	case ActionUpdate:
		if len(opts.Update) == 0 {
			return "", nil, ErrNoUpdates
		}
		columns := make([]string, 0, len(opts.Update))
		for col := range opts.Update {
			columns = append(columns, col)
		}
		sort.Strings(columns)

		b := newBindings(opts.Placeholders)
		sets := make([]string, len(columns))
		for i, col := range columns {
			sets[i] = col + " = " + b.operand(opts.Update[col])
		}

		query := "UPDATE " + opts.Table + " SET " + strings.Join(sets, ", ")
		if opts.Where != "" {
			query += " WHERE " + opts.Where
		}
		return query, b.named, nil

	case ActionDescribe:
		return d.Describe(opts.Table), nil, nil

	case ActionDelete:
		if opts.Where == "" {
			return "", nil, ErrMissingWhere
		}
		return "DELETE FROM " + opts.Table + " WHERE " + opts.Where, opts.Placeholders, nil

	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedAction, action)
	}
}

// bindings collects values for generated placeholders next to the caller's.
type bindings struct {
	named map[string]any
	n     int
}

func newBindings(placeholders map[string]any) *bindings {
	named := make(map[string]any, len(placeholders))
	for k, v := range placeholders {
		named[k] = v
	}
	return &bindings{named: named}
}

// operand keeps named placeholders such as :value and binds everything else.
func (b *bindings) operand(v any) string {
	if s, ok := v.(string); ok && IsPlaceholder(s) {
		return s
	}
	for {
		b.n++
		name := "_v" + strconv.Itoa(b.n)
		if _, taken := b.named[name]; taken {
			continue
		}
		if _, taken := b.named[":"+name]; taken {
			continue
		}
		b.named[name] = v
		return ":" + name
	}
}

// IsPlaceholder reports whether s is a named placeholder like :title.
func IsPlaceholder(s string) bool {
	if len(s) < 2 || s[0] != ':' {
		return false
	}
	for i, r := range s[1:] {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
