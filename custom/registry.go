// Package custom registers custom query templates and dispatches matching
// input to their handlers.
//
// A template such as "Value of %c for post: %c" is compiled into a pattern
// in which every %c captures text. Input that fits the shape is split into
// ordered arguments and handed to the template's handler.
package custom

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Match is the outcome of a successful template lookup.
type Match struct {
	Template *Template
	Args     []string
}

// Registry holds templates in registration order. It is safe for concurrent
// use; Register takes the write lock and Match the read lock.
type Registry struct {
	mu        sync.RWMutex
	templates []*Template
	byPattern map[string]*Template

	marker       string
	prefixFilter int
	logger       *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithMarker replaces the %c wildcard token.
func WithMarker(marker string) Option {
	return func(r *Registry) {
		if marker != "" {
			r.marker = marker
		}
	}
}

// WithPrefixFilter only tries templates whose unquoted source shares the
// first n characters with the query. The first such template is then final:
// if its pattern does not fit, the query is malformed rather than unmatched.
func WithPrefixFilter(n int) Option {
	return func(r *Registry) {
		r.prefixFilter = n
	}
}

// WithLogger sets the registry logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		byPattern: make(map[string]*Template),
		marker:    DefaultMarker,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register compiles text and binds it to h. Registering a text whose
// compiled pattern already exists keeps the first template and returns it.
func (r *Registry) Register(text string, h Handler) (*Template, error) {
	if h == nil {
		return nil, ErrNilHandler
	}

	t, err := newTemplate(text, r.marker, h)
	if err != nil {
		return nil, err
	}
	if arity := h.Arity(); arity != Variadic && arity != t.Wildcards {
		return nil, &ArityError{Pattern: t.Pattern, Want: arity, Got: t.Wildcards}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byPattern[t.Pattern]; ok {
		r.logger.Debug("template already registered", zap.String("pattern", t.Pattern))
		return existing, nil
	}

	r.byPattern[t.Pattern] = t
	r.templates = append(r.templates, t)
	r.logger.Debug("template registered",
		zap.String("id", t.ID.String()),
		zap.String("pattern", t.Pattern),
		zap.Int("wildcards", t.Wildcards))
	return t, nil
}

// Match finds the first template, in registration order, that fits query and
// extracts its wildcard arguments.
func (r *Registry) Match(query string) (*Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.templates {
		if r.prefixFilter > 0 && !samePrefix(t.Source, query, r.prefixFilter) {
			continue
		}

		args, ok, err := t.extract(query)
		if err != nil {
			return nil, err
		}
		if !ok {
			if r.prefixFilter == 0 {
				continue
			}
			// A prefix hit is final. Without wildcards there is nothing to
			// capture, so the handler still runs.
			if t.Wildcards == 0 {
				return &Match{Template: t, Args: []string{}}, nil
			}
			return nil, &MalformedInputError{Query: query, Pattern: t.Pattern, Group: 1}
		}
		return &Match{Template: t, Args: args}, nil
	}
	return nil, ErrNoMatch
}

// Dispatch invokes the matched handler with its arguments and returns the
// handler's result unmodified.
func (r *Registry) Dispatch(ctx context.Context, m *Match) (any, error) {
	h := m.Template.Handler
	if arity := h.Arity(); arity != Variadic && arity != len(m.Args) {
		return nil, &ArityError{Pattern: m.Template.Pattern, Want: arity, Got: len(m.Args)}
	}
	return h.Handle(ctx, m.Args)
}

// Exec matches query and dispatches it.
func (r *Registry) Exec(ctx context.Context, query string) (any, error) {
	m, err := r.Match(query)
	if err != nil {
		return nil, err
	}
	return r.Dispatch(ctx, m)
}

// Lookup returns the template registered for text, if any.
func (r *Registry) Lookup(text string) (*Template, bool) {
	pattern, _ := Compile(text, r.marker)

	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byPattern[pattern]
	return t, ok
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}

// Templates returns a snapshot in registration order.
func (r *Registry) Templates() []*Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Template, len(r.templates))
	copy(out, r.templates)
	return out
}

func samePrefix(source, query string, n int) bool {
	return prefix(source, n) == prefix(query, n)
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
