package custom

import "context"

// Variadic marks a handler that accepts any number of arguments.
const Variadic = -1

// Handler is the callback bound to a template. Handle receives one argument
// per wildcard, in the order the wildcards appear in the template text.
type Handler interface {
	Arity() int
	Handle(ctx context.Context, args []string) (any, error)
}

// HandlerFunc adapts a plain function into a variadic Handler.
type HandlerFunc func(ctx context.Context, args []string) (any, error)

func (f HandlerFunc) Arity() int { return Variadic }

func (f HandlerFunc) Handle(ctx context.Context, args []string) (any, error) {
	return f(ctx, args)
}

type fixedHandler struct {
	arity int
	fn    HandlerFunc
}

func (h fixedHandler) Arity() int { return h.arity }

func (h fixedHandler) Handle(ctx context.Context, args []string) (any, error) {
	return h.fn(ctx, args)
}

// Func binds fn to a fixed argument count.
func Func(arity int, fn HandlerFunc) Handler {
	return fixedHandler{arity: arity, fn: fn}
}

// Func1 wraps a single-argument callback.
func Func1(fn func(ctx context.Context, a string) (any, error)) Handler {
	return Func(1, func(ctx context.Context, args []string) (any, error) {
		return fn(ctx, args[0])
	})
}

// Func2 wraps a two-argument callback.
func Func2(fn func(ctx context.Context, a, b string) (any, error)) Handler {
	return Func(2, func(ctx context.Context, args []string) (any, error) {
		return fn(ctx, args[0], args[1])
	})
}

// Func3 wraps a three-argument callback.
func Func3(fn func(ctx context.Context, a, b, c string) (any, error)) Handler {
	return Func(3, func(ctx context.Context, args []string) (any, error) {
		return fn(ctx, args[0], args[1], args[2])
	})
}
