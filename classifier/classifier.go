// Package classifier decides whether query text is standard SQL or a custom
// query for the template registry.
package classifier

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind is the routing decision for a query.
type Kind int

const (
	Unrecognized Kind = iota
	Standard
	Custom
)

func (k Kind) String() string {
	switch k {
	case Standard:
		return "standard"
	case Custom:
		return "custom"
	default:
		return "unrecognized"
	}
}

// Result carries the kind and, for standard SQL, the leading verb.
type Result struct {
	Kind   Kind
	Action string
}

// Classifier routes query text.
type Classifier interface {
	Classify(query string) Result
}

// Actions are the SQL verbs accepted on the standard path.
var Actions = []string{"INSERT", "UPDATE", "DELETE", "SELECT", "DESCRIBE", "EXPLAIN", "SHOW"}

// shape is a coarse four-segment check. It accepts some malformed SQL and
// rejects some valid SQL (DESCRIBE t, SELECT 1); callers rely on exactly this
// boundary.
var shape = regexp.MustCompile(`(SELECT|UPDATE|DELETE|DESCRIBE|EXPLAIN|CREATE|ALTER|DROP|INSERT|SHOW) (FROM|INTO|.*) (FROM|SET|.*) (.*)`)

// Heuristic is the default classifier. The verb is the text before the first
// space and must be upper case.
type Heuristic struct{}

func (Heuristic) Classify(query string) Result {
	verb, _, _ := strings.Cut(query, " ")
	if !isAction(verb) {
		return Result{Kind: Custom}
	}
	if !shape.MatchString(query) {
		return Result{Kind: Unrecognized, Action: verb}
	}
	return Result{Kind: Standard, Action: verb}
}

// Verbs classifies on the leading verb alone, in any case, without the shape
// check.
type Verbs struct{}

func (Verbs) Classify(query string) Result {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return Result{Kind: Custom}
	}
	verb := strings.ToUpper(fields[0])
	if !isAction(verb) {
		return Result{Kind: Custom}
	}
	return Result{Kind: Standard, Action: verb}
}

func isAction(verb string) bool {
	for _, a := range Actions {
		if a == verb {
			return true
		}
	}
	return false
}

// New returns the classifier registered under name.
func New(name string) (Classifier, error) {
	switch strings.ToLower(name) {
	case "", "heuristic":
		return Heuristic{}, nil
	case "verbs":
		return Verbs{}, nil
	default:
		return nil, fmt.Errorf("unknown classifier %q", name)
	}
}
