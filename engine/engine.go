// Package engine is the entry point for running queries. Standard SQL is sent
// to the database; anything else is matched against the registered custom
// query templates and handed to the template's handler.
package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Konsultn-Engineering/enquery/classifier"
	"github.com/Konsultn-Engineering/enquery/connector"
	"github.com/Konsultn-Engineering/enquery/custom"
	"github.com/Konsultn-Engineering/enquery/database"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Engine struct {
	mu     sync.Mutex
	ready  atomic.Bool
	conn   connector.Connection
	runner *database.Runner
	config connector.Config

	registry   *custom.Registry
	classifier classifier.Classifier
	logger     *zap.Logger

	numRows atomic.Int64
}

// Option configures an Engine.
type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithClassifier(c classifier.Classifier) Option {
	return func(e *Engine) {
		if c != nil {
			e.classifier = c
		}
	}
}

// WithRegistry shares an existing template registry with the engine.
func WithRegistry(r *custom.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		classifier: classifier.Heuristic{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = custom.NewRegistry(custom.WithLogger(e.logger))
	}
	return e
}

// Setup connects using cfg and marks the engine ready. Calling it again after
// a successful setup does nothing.
func (e *Engine) Setup(ctx context.Context, cfg connector.Config) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ready.Load() {
		return nil
	}

	c, err := connector.New(cfg)
	if err != nil {
		return err
	}
	conn, err := c.Connect(ctx)
	if err != nil {
		return fmt.Errorf("engine setup: %w", err)
	}

	e.attach(conn, cfg)
	e.logger.Info("engine ready",
		zap.String("driver", cfg.Driver),
		zap.String("dialect", conn.Dialect().Name()),
		zap.String("database", cfg.Database))
	return nil
}

// Attach marks the engine ready over an already open connection.
func (e *Engine) Attach(conn connector.Connection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attach(conn, connector.Config{})
}

func (e *Engine) attach(conn connector.Connection, cfg connector.Config) {
	e.conn = conn
	e.config = cfg
	e.runner = database.NewRunner(conn.Database(), conn.Dialect())
	e.ready.Store(true)
}

func (e *Engine) Ready() bool {
	return e.ready.Load()
}

// Registry returns the template registry used for custom queries.
func (e *Engine) Registry() *custom.Registry {
	return e.registry
}

// Build registers a custom query template. See custom.Registry.Register.
func (e *Engine) Build(text string, h custom.Handler) (*custom.Template, error) {
	if !e.Ready() {
		return nil, ErrNotReady
	}
	return e.registry.Register(text, h)
}

// Run executes query. Standard SQL returns []database.Row with placeholders
// bound by name; custom queries return whatever their handler returns.
func (e *Engine) Run(ctx context.Context, query string, placeholders map[string]any) (any, error) {
	if !e.Ready() {
		return nil, ErrNotReady
	}

	log := e.logger.With(zap.String("invocation", uuid.NewString()))
	res := e.classifier.Classify(query)
	log.Debug("query classified",
		zap.String("kind", res.Kind.String()),
		zap.String("action", res.Action))

	switch res.Kind {
	case classifier.Standard:
		rows, err := e.exec(ctx, query, placeholders)
		if err != nil {
			log.Warn("statement failed", zap.String("action", res.Action), zap.Error(err))
			return nil, err
		}
		log.Debug("statement executed", zap.Int("rows", len(rows)))
		return rows, nil

	case classifier.Custom:
		out, err := e.registry.Exec(ctx, query)
		if err != nil {
			log.Debug("custom query failed", zap.String("query", query), zap.Error(err))
			return nil, err
		}
		log.Debug("custom query dispatched")
		return out, nil

	default:
		log.Debug("statement rejected", zap.String("query", query))
		return nil, fmt.Errorf("%w: %q", ErrUnrecognized, query)
	}
}

// exec sends a finished statement to the database and records its row count.
func (e *Engine) exec(ctx context.Context, query string, placeholders map[string]any) ([]database.Row, error) {
	e.mu.Lock()
	runner, timeout := e.runner, e.config.QueryTimeout
	e.mu.Unlock()
	if runner == nil {
		return nil, ErrNotReady
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	rows, err := runner.Run(ctx, query, placeholders)
	if err != nil {
		return nil, err
	}
	e.numRows.Store(int64(len(rows)))
	return rows, nil
}

// NumRows returns the row count of the last standard statement.
func (e *Engine) NumRows() int {
	return int(e.numRows.Load())
}

// Connection returns the underlying connection, or nil before setup.
func (e *Engine) Connection() connector.Connection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.conn
}

// Close releases the connection. The engine must be set up again before use.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready.Load() {
		return nil
	}
	e.ready.Store(false)
	stats := e.conn.Stats()
	e.logger.Debug("closing connection",
		zap.Int("open", stats.OpenConnections),
		zap.Int("in_use", stats.InUse),
		zap.Int64("rows_last", e.numRows.Load()))
	err := e.conn.Close()
	e.conn = nil
	e.runner = nil
	return err
}
