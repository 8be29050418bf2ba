package custom

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func echoArgs(ctx context.Context, args []string) (any, error) {
	return append([]string(nil), args...), nil
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		pattern   string
		wildcards int
	}{
		{"single", "Get title: %c", "Get title: (.*)", 1},
		{"trimmed", "  Value of %c for post: %c \n", "Value of (.*) for post: (.*)", 2},
		{"no wildcard", "List all posts", "List all posts", 0},
		{"metacharacters", "Cost of %c (USD)", `Cost of (.*) \(USD\)`, 1},
		{"adjacent", "%c%c", "(.*)(.*)", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern, n := Compile(tt.text, DefaultMarker)
			assert.Equal(t, tt.pattern, pattern)
			assert.Equal(t, tt.wildcards, n)
			assert.Equal(t, tt.wildcards, CountWildcards(tt.text))
		})
	}
}

func TestRegistry_RoundTrip(t *testing.T) {
	r := NewRegistry()

	var got string
	_, err := r.Register("Get title: %c", Func1(func(ctx context.Context, post string) (any, error) {
		got = post
		return "title of " + post, nil
	}))
	require.NoError(t, err)

	result, err := r.Exec(context.Background(), "Get title: BlogPad")
	require.NoError(t, err)
	assert.Equal(t, "BlogPad", got)
	assert.Equal(t, "title of BlogPad", result)
}

func TestRegistry_TwoWildcards(t *testing.T) {
	r := NewRegistry()
	tmpl, err := r.Register("Value of %c for post: %c", Func2(func(ctx context.Context, column, post string) (any, error) {
		return []string{column, post}, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, 2, tmpl.Wildcards)

	m, err := r.Match("Value of description for post: BlogPad Function: process_emots()")
	require.NoError(t, err)
	assert.Same(t, tmpl, m.Template)
	assert.Equal(t, []string{"description", "BlogPad Function: process_emots()"}, m.Args)

	result, err := r.Dispatch(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, m.Args, result)
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	r := NewRegistry()

	first, err := r.Register("Get title: %c", HandlerFunc(func(ctx context.Context, args []string) (any, error) {
		return "first", nil
	}))
	require.NoError(t, err)

	second, err := r.Register("  Get title: %c  ", HandlerFunc(func(ctx context.Context, args []string) (any, error) {
		return "second", nil
	}))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, r.Len())

	result, err := r.Exec(context.Background(), "Get title: BlogPad")
	require.NoError(t, err)
	assert.Equal(t, "first", result)
}

func TestRegistry_FirstRegisteredWins(t *testing.T) {
	r := NewRegistry()
	_, err := r.Register("Show %c", HandlerFunc(func(ctx context.Context, args []string) (any, error) {
		return "broad", nil
	}))
	require.NoError(t, err)
	_, err = r.Register("Show %c please", HandlerFunc(func(ctx context.Context, args []string) (any, error) {
		return "narrow", nil
	}))
	require.NoError(t, err)

	m, err := r.Match("Show cats please")
	require.NoError(t, err)
	assert.Equal(t, "Show (.*)", m.Template.Pattern)
	assert.Equal(t, []string{"cats please"}, m.Args)

	result, err := r.Dispatch(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "broad", result)
}

func TestRegistry_NoMatch(t *testing.T) {
	r := NewRegistry()
	called := false
	_, err := r.Register("Get title: %c", HandlerFunc(func(ctx context.Context, args []string) (any, error) {
		called = true
		return nil, nil
	}))
	require.NoError(t, err)

	result, err := r.Exec(context.Background(), "FOO BAR")
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Nil(t, result)
	assert.False(t, called)
}

func TestRegistry_EmptyCapture(t *testing.T) {
	r := NewRegistry()
	called := false
	_, err := r.Register("Echo: %c", Func1(func(ctx context.Context, s string) (any, error) {
		called = true
		return s, nil
	}))
	require.NoError(t, err)

	_, err = r.Exec(context.Background(), "Echo: ")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.False(t, called)

	var malformed *MalformedInputError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "Echo: ", malformed.Query)
	assert.Equal(t, 1, malformed.Group)
}

func TestRegistry_EmptyCaptureStopsSearch(t *testing.T) {
	r := NewRegistry()
	_, err := r.Register("Pair %c%c", Func2(func(ctx context.Context, a, b string) (any, error) {
		return nil, nil
	}))
	require.NoError(t, err)
	_, err = r.Register("Pair %c", Func1(func(ctx context.Context, a string) (any, error) {
		return a, nil
	}))
	require.NoError(t, err)

	// The greedy first group leaves the second empty.
	_, err = r.Match("Pair ab")
	var malformed *MalformedInputError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 2, malformed.Group)
}

func TestRegistry_LiteralMetacharacters(t *testing.T) {
	r := NewRegistry()
	_, err := r.Register("Cost of %c (USD)", HandlerFunc(echoArgs))
	require.NoError(t, err)

	m, err := r.Match("Cost of lunch (USD)")
	require.NoError(t, err)
	assert.Equal(t, []string{"lunch"}, m.Args)

	_, err = r.Match("Cost of lunch USD")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestRegistry_ArityCheckedAtRegistration(t *testing.T) {
	r := NewRegistry()

	_, err := r.Register("Value of %c for post: %c", Func1(func(ctx context.Context, s string) (any, error) {
		return s, nil
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArity)

	var arity *ArityError
	require.True(t, errors.As(err, &arity))
	assert.Equal(t, 1, arity.Want)
	assert.Equal(t, 2, arity.Got)
	assert.Equal(t, 0, r.Len())

	_, err = r.Register("Anything %c", nil)
	assert.ErrorIs(t, err, ErrNilHandler)
}

func TestRegistry_DispatchArityMismatch(t *testing.T) {
	r := NewRegistry()
	tmpl, err := r.Register("Get title: %c", Func1(func(ctx context.Context, s string) (any, error) {
		return s, nil
	}))
	require.NoError(t, err)

	_, err = r.Dispatch(context.Background(), &Match{Template: tmpl, Args: []string{"a", "b"}})
	assert.ErrorIs(t, err, ErrArity)
}

func TestRegistry_HandlerErrorPropagates(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	_, err := r.Register("Fail on %c", Func1(func(ctx context.Context, s string) (any, error) {
		return nil, boom
	}))
	require.NoError(t, err)

	_, err = r.Exec(context.Background(), "Fail on purpose")
	assert.Equal(t, boom, err)
}

func TestRegistry_PrefixFilter(t *testing.T) {
	register := func(r *Registry) {
		_, err := r.Register("Get title: %c", HandlerFunc(echoArgs))
		require.NoError(t, err)
		_, err = r.Register("Get body: %c", HandlerFunc(echoArgs))
		require.NoError(t, err)
	}

	t.Run("default tries every template", func(t *testing.T) {
		r := NewRegistry()
		register(r)

		m, err := r.Match("Get body: BlogPad")
		require.NoError(t, err)
		assert.Equal(t, "Get body: (.*)", m.Template.Pattern)
	})

	t.Run("first prefix hit is final", func(t *testing.T) {
		r := NewRegistry(WithPrefixFilter(4))
		register(r)

		_, err := r.Match("Get body: BlogPad")
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("prefix miss skips template", func(t *testing.T) {
		r := NewRegistry(WithPrefixFilter(4))
		register(r)

		_, err := r.Match("Fetch body: BlogPad")
		assert.ErrorIs(t, err, ErrNoMatch)
	})

	t.Run("metacharacters in the prefix", func(t *testing.T) {
		tests := []struct {
			text  string
			query string
			args  []string
		}{
			{"Who? %c", "Who? Alice", []string{"Alice"}},
			{"Sum(%c)", "Sum(views)", []string{"views"}},
			{"a.b %c", "a.b posts", []string{"posts"}},
		}

		for _, tt := range tests {
			r := NewRegistry(WithPrefixFilter(4))
			tmpl, err := r.Register(tt.text, HandlerFunc(echoArgs))
			require.NoError(t, err)
			assert.Equal(t, strings.Replace(tt.text, DefaultMarker, "(.*)", 1), tmpl.Source)

			m, err := r.Match(tt.query)
			require.NoError(t, err, tt.text)
			assert.Equal(t, tt.args, m.Args, tt.text)
		}
	})

	t.Run("template without wildcards runs on prefix hit", func(t *testing.T) {
		r := NewRegistry(WithPrefixFilter(4))
		_, err := r.Register("List all posts", Func(0, func(ctx context.Context, args []string) (any, error) {
			return "listed", nil
		}))
		require.NoError(t, err)

		result, err := r.Exec(context.Background(), "List nothing")
		require.NoError(t, err)
		assert.Equal(t, "listed", result)
	})
}

func TestRegistry_CustomMarker(t *testing.T) {
	r := NewRegistry(WithMarker("{}"))
	tmpl, err := r.Register("Rename {} to {}", HandlerFunc(echoArgs))
	require.NoError(t, err)
	assert.Equal(t, 2, tmpl.Wildcards)

	m, err := r.Match("Rename drafts to archive")
	require.NoError(t, err)
	assert.Equal(t, []string{"drafts", "archive"}, m.Args)

	found, ok := r.Lookup(" Rename {} to {} ")
	assert.True(t, ok)
	assert.Same(t, tmpl, found)
}

func TestRegistry_TemplatesInRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	texts := []string{"Alpha %c", "Beta %c", "Gamma %c", "Delta %c"}
	for _, text := range texts {
		_, err := r.Register(text, HandlerFunc(echoArgs))
		require.NoError(t, err)
	}

	templates := r.Templates()
	require.Len(t, templates, len(texts))
	for i, tmpl := range templates {
		assert.Equal(t, texts[i], tmpl.Text)
		if i > 0 {
			assert.Negative(t, templates[i-1].ID.Compare(tmpl.ID))
		}
	}
}

func TestRegistry_ConcurrentRegisterAndMatch(t *testing.T) {
	r := NewRegistry()
	_, err := r.Register("Get title: %c", HandlerFunc(echoArgs))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := r.Register(fmt.Sprintf("Worker %d says %%c", i), HandlerFunc(echoArgs))
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m, err := r.Match("Get title: BlogPad")
				if assert.NoError(t, err) {
					assert.Equal(t, []string{"BlogPad"}, m.Args)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 9, r.Len())
	m, err := r.Match("Worker 3 says hello")
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, m.Args)
}
