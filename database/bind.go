package database

import (
	"strings"

	"github.com/Konsultn-Engineering/enquery/dialect"
)

// Bind rewrites :name placeholders into the positional placeholders of d and
// returns the matching argument list. Quoted text and :: casts are left
// alone; inside string literals a backslash escapes the next character when
// the dialect reads it that way. Keys in named may be written with or without
// the leading colon.
func Bind(d dialect.Dialect, query string, named map[string]any) (string, []any, error) {
	if !strings.Contains(query, ":") {
		return query, nil, nil
	}

	var (
		sb      strings.Builder
		args    []any
		quote   byte
		escapes = d.BackslashEscapes()
	)
	sb.Grow(len(query))

	for i := 0; i < len(query); i++ {
		c := query[i]

		if quote != 0 {
			sb.WriteByte(c)
			switch {
			case c == '\\' && escapes && quote != '`' && i+1 < len(query):
				i++
				sb.WriteByte(query[i])
			case c == quote:
				quote = 0
			}
			continue
		}

		switch {
		case c == '\'' || c == '"' || c == '`':
			quote = c
			sb.WriteByte(c)

		case c == ':' && i+1 < len(query) && query[i+1] == ':':
			sb.WriteString("::")
			i++

		case c == ':' && i+1 < len(query) && isNameStart(query[i+1]):
			j := i + 1
			for j < len(query) && isNamePart(query[j]) {
				j++
			}
			name := query[i+1 : j]

			v, ok := lookup(named, name)
			if !ok {
				return "", nil, &BindError{Name: name, Query: query}
			}
			args = append(args, v)
			sb.WriteString(d.Placeholder(len(args)))
			i = j - 1

		default:
			sb.WriteByte(c)
		}
	}

	return sb.String(), args, nil
}

func lookup(named map[string]any, name string) (any, bool) {
	if v, ok := named[name]; ok {
		return v, true
	}
	v, ok := named[":"+name]
	return v, ok
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNamePart(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}
