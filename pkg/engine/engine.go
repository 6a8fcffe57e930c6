package engine

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/leapstack-labs/minisql/pkg/core"
)

// ExecuteHook is called after every Execute with the statement text and
// its result.
type ExecuteHook func(sql string, res *Result)

// Config holds engine configuration.
type Config struct {
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
	// OnExecute is called after each statement (optional)
	OnExecute ExecuteHook
}

// Engine executes statements against the Store it owns.
type Engine struct {
	id        string
	logger    *slog.Logger
	store     *Store
	onExecute ExecuteHook
}

// New creates an engine with an empty store.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	id := uuid.NewString()
	logger.Debug("initializing engine", "engine_id", id)

	return &Engine{
		id:        id,
		logger:    logger.With("engine_id", id),
		store:     NewStore(),
		onExecute: cfg.OnExecute,
	}
}

// ID returns the unique identifier of this engine instance.
func (e *Engine) ID() string {
	return e.id
}

// Tables returns the table names, sorted.
func (e *Engine) Tables() []string {
	return e.store.Names()
}

// Schema returns the schema of a table.
func (e *Engine) Schema(name string) (core.TableSchema, bool) {
	schema, err := e.store.Schema(name)
	return schema, err == nil
}

// Reset discards every table.
func (e *Engine) Reset() {
	e.logger.Debug("resetting store", "tables", e.store.Len())
	e.store = NewStore()
}
