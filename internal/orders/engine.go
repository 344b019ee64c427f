// =============================================================================
// Order Code Filter - Orders Filter Engine
// =============================================================================
//
// The engine owns the canonical orders table: the most recently loaded orders
// file, restricted to the catalog columns in catalog order. Every filter and
// reset is computed from it, and nothing but a successful Initialize replaces
// it.
//
// LIFECYCLE:
//   NewEngine       -> no canonical table; Reset/FilterByCodes report ErrNoDataLoaded
//   Initialize(raw) -> installs a new canonical table (or fails, keeping the old one)
//   FilterByCodes   -> returns a filtered copy, canonical table untouched
//   Reset           -> returns the canonical table
//   Clear           -> forgets the current view only
//
// CONCURRENCY:
//   An Engine is not safe for concurrent use. It serves a single session.
//
// =============================================================================

package orders

import (
	"errors"
	"log/slog"

	"github.com/ginjaninja78/order-code-filter/internal/codes"
	"github.com/ginjaninja78/order-code-filter/internal/table"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNoRequiredColumns is returned by Initialize when the raw table has
	// none of the catalog columns.
	ErrNoRequiredColumns = errors.New("no required order columns found")

	// ErrMissingFilterColumn is returned by FilterByCodes when the canonical
	// table has no Product Line Code column.
	ErrMissingFilterColumn = errors.New("required column 'Product Line Code' not found")

	// ErrEmptySelection is returned by FilterByCodes for an empty selection.
	ErrEmptySelection = errors.New("no codes selected")

	// ErrNoDataLoaded is returned when no orders table has been installed.
	ErrNoDataLoaded = errors.New("no orders data loaded")
)

// =============================================================================
// LOGGER
// =============================================================================

// Logger is the logging interface the engine writes to. *slog.Logger
// satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine holds the canonical orders table and serves filtered views of it.
type Engine struct {
	canonical *table.Table
	view      *table.Table
	logger    Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine returns an engine with no canonical table.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize restricts raw to the catalog columns, in catalog order, and
// installs the result as the canonical table.
//
// RETURNS:
//   - The new canonical table, for display.
//   - ErrNoRequiredColumns if raw has no catalog column. The previous
//     canonical table, if any, is kept.
func (e *Engine) Initialize(raw *table.Table) (*table.Table, error) {
	if raw == nil {
		return nil, ErrNoRequiredColumns
	}

	restricted := raw.Select(catalog)
	if restricted.NumColumns() == 0 {
		e.logger.Warn("orders table has no catalog columns",
			"columns", raw.NumColumns())
		return nil, ErrNoRequiredColumns
	}

	e.canonical = restricted
	e.view = restricted
	e.logger.Info("orders table installed",
		"columns", restricted.NumColumns(),
		"dropped_columns", raw.NumColumns()-restricted.NumColumns(),
		"rows", restricted.Len())
	return restricted, nil
}

// FilterByCodes returns the canonical rows whose Product Line Code, as text,
// equals the text of one of the selected codes. Row order is preserved and
// the canonical table is not modified. Absent codes never match.
func (e *Engine) FilterByCodes(selection codes.Selection) (*table.Table, error) {
	if selection.IsEmpty() {
		return nil, ErrEmptySelection
	}
	if e.canonical == nil {
		return nil, ErrNoDataLoaded
	}
	col := e.canonical.ColumnIndex(FilterColumn)
	if col < 0 {
		return nil, ErrMissingFilterColumn
	}

	filtered := e.canonical.Filter(func(row table.Row) bool {
		v := row[col]
		if table.IsMissing(v) {
			return false
		}
		return selection.Contains(table.Text(v))
	})

	e.view = filtered
	e.logger.Debug("orders filtered",
		"codes", selection.Len(),
		"rows", filtered.Len(),
		"of", e.canonical.Len())
	return filtered, nil
}

// Reset returns the canonical table unchanged. It fails with ErrNoDataLoaded
// before the first successful Initialize. An empty canonical table is
// returned as is.
func (e *Engine) Reset() (*table.Table, error) {
	if e.canonical == nil {
		return nil, ErrNoDataLoaded
	}
	e.view = e.canonical
	return e.canonical, nil
}

// Clear forgets the current view. The canonical table is kept.
func (e *Engine) Clear() {
	e.view = nil
}

// View returns the table last returned by Initialize, FilterByCodes or
// Reset, or nil after Clear.
func (e *Engine) View() *table.Table {
	return e.view
}

// Canonical returns the canonical table, or nil when nothing is loaded.
func (e *Engine) Canonical() *table.Table {
	return e.canonical
}

// Loaded reports whether a canonical table is installed.
func (e *Engine) Loaded() bool {
	return e.canonical != nil
}
