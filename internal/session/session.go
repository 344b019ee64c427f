// =============================================================================
// Order Code Filter - Session
// =============================================================================
//
// A Session is the state behind one screen of the application: a data grid,
// a list of codes chosen from a codes file, a status line and a row counter.
// It wires the loader, the orders engine, the code extractor and the
// formatter together and exposes the operations a user interface calls.
//
// The session never draws anything. After every operation the caller reads
// Snapshot() and renders it.
//
// USER FLOW:
//   1. OpenCodes(path)          - show a codes file in the grid
//   2. LoadSelectedCodes(rows)  - copy the chosen rows' codes into the code list
//   3. OpenOrders(path)         - load an orders file as the canonical table
//   4. Filter(indices)          - show orders whose Product Line Code is selected
//   5. Reset()                  - show the full orders table again
//   Cancel()                    - clear the grid without touching loaded orders
//
// CONCURRENCY:
//   A Session is not safe for concurrent use.
//
// =============================================================================

package session

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ginjaninja78/order-code-filter/internal/codes"
	"github.com/ginjaninja78/order-code-filter/internal/format"
	"github.com/ginjaninja78/order-code-filter/internal/loader"
	"github.com/ginjaninja78/order-code-filter/internal/orders"
	"github.com/ginjaninja78/order-code-filter/internal/table"
)

// ErrCodesNotLoaded is returned by LoadSelectedCodes when the grid is not
// showing a codes file.
var ErrCodesNotLoaded = errors.New("no codes file is displayed")

// =============================================================================
// STATUS TEXTS
// =============================================================================

const (
	StatusCodesLoaded  = "Codes File Loaded"
	StatusFiltered     = "View Filtered"
	StatusFiltersReset = "Filters reset"
	statusOrdersFormat = "Orders: %s"
)

// =============================================================================
// MODE
// =============================================================================

// Mode tells which kind of data the grid is showing.
type Mode int

const (
	// ModeEmpty means the grid is blank.
	ModeEmpty Mode = iota

	// ModeCodes means the grid shows a codes file.
	ModeCodes

	// ModeOrders means the grid shows the orders table or a filtered view.
	ModeOrders
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeCodes:
		return "codes"
	case ModeOrders:
		return "orders"
	default:
		return "empty"
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View is a snapshot of everything a user interface displays.
type View struct {
	// SessionID identifies the session in logs.
	SessionID string

	// Mode is what the grid shows.
	Mode Mode

	// Grid is the formatted table.
	Grid format.Grid

	// Status is the status line text.
	Status string

	// CodeList holds the text of each code in the code list, in order.
	CodeList []string

	// SelectedCodes are the indices of the highlighted code list entries.
	SelectedCodes []int

	// CodeActions reports whether the codes actions (cancel, load codes)
	// are offered.
	CodeActions bool

	// OrderActions reports whether the orders actions (filter, clear) are
	// offered.
	OrderActions bool
}

// RowCount returns the number of rows shown in the grid.
func (v View) RowCount() int {
	return v.Grid.RowCount()
}

// =============================================================================
// SESSION
// =============================================================================

// Session holds the state of one user session.
type Session struct {
	id     string
	opts   loader.Options
	engine *orders.Engine
	logger *slog.Logger
	loadFn func(path string, opts loader.Options) (*table.Table, error)

	displayed   *table.Table
	grid        format.Grid
	mode        Mode
	status      string
	codesLoaded bool

	codeList      []any
	selectedCodes []int

	codeActions  bool
	orderActions bool
}

// New creates a session that reads files with opts.
func New(opts loader.Options, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New().String()
	logger = logger.With(slog.String("session_id", id))
	opts.Logger = logger

	return &Session{
		id:     id,
		opts:   opts,
		engine: orders.NewEngine(orders.WithLogger(logger)),
		logger: logger,
		loadFn: loader.LoadWithOptions,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Engine returns the orders engine owned by the session.
func (s *Session) Engine() *orders.Engine {
	return s.engine
}

// Snapshot returns a copy of the displayed state.
func (s *Session) Snapshot() View {
	list := make([]string, len(s.codeList))
	for i, v := range s.codeList {
		list[i] = table.Text(v)
	}
	return View{
		SessionID:     s.id,
		Mode:          s.mode,
		Grid:          s.grid,
		Status:        s.status,
		CodeList:      list,
		SelectedCodes: append([]int(nil), s.selectedCodes...),
		CodeActions:   s.codeActions,
		OrderActions:  s.orderActions,
	}
}

// =============================================================================
// FILE OPERATIONS
// =============================================================================

// OpenCodes loads a codes file and shows it in the grid. On failure nothing
// changes.
func (s *Session) OpenCodes(path string) error {
	t, err := s.loadFn(path, s.opts)
	if err != nil {
		s.logger.Error("codes file load failed", slog.String("path", path), slog.Any("error", err))
		return err
	}

	s.orderActions = false
	s.show(t, ModeCodes)
	s.codesLoaded = true
	s.status = StatusCodesLoaded
	s.codeActions = true

	s.logger.Info("codes file loaded", slog.String("path", path), slog.Int("rows", t.Len()))
	return nil
}

// OpenOrders loads an orders file, installs it as the canonical orders table
// and shows it. On failure, including a file without any catalog column,
// nothing changes.
func (s *Session) OpenOrders(path string) error {
	raw, err := s.loadFn(path, s.opts)
	if err != nil {
		s.logger.Error("orders file load failed", slog.String("path", path), slog.Any("error", err))
		return err
	}

	canonical, err := s.engine.Initialize(raw)
	if err != nil {
		s.logger.Warn("orders file rejected", slog.String("path", path), slog.Any("error", err))
		return err
	}

	s.codeActions = false
	s.codesLoaded = false
	s.show(canonical, ModeOrders)
	s.status = fmt.Sprintf(statusOrdersFormat, filepath.Base(path))
	s.orderActions = true
	return nil
}

// =============================================================================
// CODE SELECTION
// =============================================================================

// CanLoadCodes reports whether loading codes from selectedRows grid rows is
// possible: a codes file is shown and at least one row is selected.
func (s *Session) CanLoadCodes(selectedRows int) bool {
	return s.codesLoaded && selectedRows > 0
}

// LoadSelectedCodes replaces the code list with the code of each selected
// grid row, in the order given, and then clears the grid as Cancel does.
func (s *Session) LoadSelectedCodes(rows []int) error {
	if !s.codesLoaded {
		return ErrCodesNotLoaded
	}

	values, err := codes.Extract(s.displayed, rows)
	if err != nil {
		return err
	}

	s.codeList = values
	s.selectedCodes = nil
	s.logger.Info("codes selected", slog.Int("count", len(values)))

	s.Cancel()
	return nil
}

// SetCodeList replaces the code list directly, for callers that take codes
// from somewhere other than a codes file.
func (s *Session) SetCodeList(values []any) {
	s.codeList = append([]any(nil), values...)
	s.selectedCodes = nil
}

// =============================================================================
// FILTERING
// =============================================================================

// Filter shows the orders whose Product Line Code matches the code list
// entries at the given indices.
func (s *Session) Filter(indices []int) error {
	if len(indices) == 0 {
		return orders.ErrEmptySelection
	}

	picked := make([]any, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(s.codeList) {
			return fmt.Errorf("%w: code %d, list has %d codes", codes.ErrRowOutOfRange, i, len(s.codeList))
		}
		picked = append(picked, s.codeList[i])
	}

	filtered, err := s.engine.FilterByCodes(codes.NewSelection(picked...))
	if err != nil {
		return err
	}

	s.selectedCodes = append([]int(nil), indices...)
	s.show(filtered, ModeOrders)
	s.status = StatusFiltered
	return nil
}

// Reset clears the code list selection and shows the full orders table. When
// no orders are loaded, or the loaded table has no rows, the grid is left as
// it is.
func (s *Session) Reset() {
	s.selectedCodes = nil

	canonical, err := s.engine.Reset()
	if err != nil || canonical.IsEmpty() {
		return
	}
	s.show(canonical, ModeOrders)
	s.status = StatusFiltersReset
}

// Cancel clears the grid and the codes actions. Loaded orders are kept.
func (s *Session) Cancel() {
	s.engine.Clear()
	s.displayed = nil
	s.grid = format.Grid{}
	s.mode = ModeEmpty
	s.codesLoaded = false
	s.codeActions = false
}

// show formats t into the grid.
func (s *Session) show(t *table.Table, mode Mode) {
	s.displayed = t
	s.grid = format.NewGrid(t, orders.IsCurrency)
	s.mode = mode
}
