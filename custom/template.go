package custom

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// DefaultMarker is the wildcard token reserved in template text.
const DefaultMarker = "%c"

// wildcardGroup captures anything, including nothing, greedily.
const wildcardGroup = "(.*)"

// Template is a registered custom query shape and its handler.
type Template struct {
	// ID sorts in registration order.
	ID ulid.ULID
	// Text is the trimmed registration string.
	Text string
	// Pattern is the compiled pattern source and the template's identity.
	Pattern string
	// Source is Text with every marker replaced by a capture group but the
	// literal text left unquoted. The prefix filter compares against it.
	Source    string
	Wildcards int
	Handler   Handler

	re *regexp.Regexp
}

// Compile turns template text into its pattern source: surrounding
// whitespace is trimmed, literal text is matched verbatim and every marker
// becomes a capture group.
func Compile(text, marker string) (pattern string, wildcards int) {
	parts := strings.Split(strings.TrimSpace(text), marker)

	var sb strings.Builder
	for i, part := range parts {
		if i > 0 {
			sb.WriteString(wildcardGroup)
		}
		sb.WriteString(regexp.QuoteMeta(part))
	}
	return sb.String(), len(parts) - 1
}

// CountWildcards returns the number of default markers in text.
func CountWildcards(text string) int {
	return strings.Count(strings.TrimSpace(text), DefaultMarker)
}

func newTemplate(text, marker string, h Handler) (*Template, error) {
	pattern, wildcards := Compile(text, marker)

	// Matching starts at the beginning of the query, like the prefix it is
	// compared against.
	re, err := regexp.Compile("^" + pattern)
	if err != nil {
		return nil, fmt.Errorf("compile template %q: %w", text, err)
	}

	trimmed := strings.TrimSpace(text)
	return &Template{
		ID:        newID(),
		Text:      trimmed,
		Pattern:   pattern,
		Source:    strings.ReplaceAll(trimmed, marker, wildcardGroup),
		Wildcards: wildcards,
		Handler:   h,
		re:        re,
	}, nil
}

// extract runs the pattern over query. ok is false when the pattern does not
// match at all; a match with an empty group yields a MalformedInputError.
func (t *Template) extract(query string) (args []string, ok bool, err error) {
	groups := t.re.FindStringSubmatchIndex(query)
	if groups == nil {
		return nil, false, nil
	}

	args = make([]string, 0, t.Wildcards)
	for g := 1; g <= t.Wildcards; g++ {
		start, end := groups[2*g], groups[2*g+1]
		if start < 0 || end <= start {
			return nil, true, &MalformedInputError{Query: query, Pattern: t.Pattern, Group: g}
		}
		args = append(args, query[start:end])
	}
	return args, true, nil
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newID() ulid.ULID {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
}
