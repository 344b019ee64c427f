// =============================================================================
// Order Code Filter - Spreadsheet Loader
// =============================================================================
//
// This module turns a spreadsheet file into a table.Table. It reads the first
// sheet of a workbook (or the whole of a CSV file) and returns the raw table
// exactly as encoded: column names as given, values as given, empty cells as
// absent values. It does not select, rename or validate columns beyond what is
// needed to keep column names unique.
//
// SUPPORTED FORMATS:
//   .xlsx .xlsm .xltx .xltm   - read with excelize (first sheet)
//   .csv                      - read with encoding/csv
//
//   Legacy .xls workbooks are rejected with ErrUnsupportedFormat.
//
// HEADER HANDLING:
//   The first row is the header row.
//   - Empty header cells are named "Unnamed: <index>".
//   - Repeated header names get a ".1", ".2", ... suffix.
//   - Cells beyond the last header extend the table with unnamed columns.
//
// =============================================================================

package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/order-code-filter/internal/table"
	"github.com/ginjaninja78/order-code-filter/pkg/utils"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrUnsupportedFormat is returned for files whose extension is not a
	// recognized spreadsheet format.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

	// ErrNoData is returned when a file has no sheet or no header row.
	ErrNoData = errors.New("no tabular data found")
)

// LoadError describes a failed load. Err is one of the sentinel errors above
// or the underlying open/parse error.
type LoadError struct {
	// Path is the file that could not be loaded.
	Path string

	// Err is the cause.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("could not read file %s: %v", e.Path, e.Err)
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls how cells are read.
type Options struct {
	// Delimiter is the CSV field separator. Ignored for workbooks.
	// Default: ','
	Delimiter rune

	// MissingValues lists extra cell texts that are read as absent values,
	// in addition to empty cells. The match is exact.
	MissingValues []string

	// Logger receives debug output. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the options used by Load.
func DefaultOptions() Options {
	return Options{Delimiter: ','}
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the spreadsheet at path into a table using DefaultOptions.
func Load(path string) (*table.Table, error) {
	return LoadWithOptions(path, DefaultOptions())
}

// LoadWithOptions reads the spreadsheet at path into a table.
//
// RETURNS:
//   - The raw table of the first sheet.
//   - A *LoadError if the file cannot be opened, is not a recognized
//     format, or contains no header row.
func LoadWithOptions(path string, opts Options) (*table.Table, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		header []string
		cells  [][]any
		err    error
	)

	kind := utils.ClassifyFile(path)
	switch kind {
	case utils.KindWorkbook:
		header, cells, err = readWorkbook(path, opts)
	case utils.KindCSV:
		header, cells, err = readCSV(path, opts)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, strings.ToLower(filepath.Ext(path)))
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	t, err := build(header, cells)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	logger.Debug("spreadsheet loaded",
		slog.String("path", path),
		slog.String("kind", kind.String()),
		slog.Int("columns", t.NumColumns()),
		slog.Int("rows", t.Len()))
	return t, nil
}

// =============================================================================
// TABLE ASSEMBLY
// =============================================================================

// build turns a header row and data cells into a table, widening the header
// when a data row is longer than it.
func build(header []string, cells [][]any) (*table.Table, error) {
	width := len(header)
	for _, row := range cells {
		if len(row) > width {
			width = len(row)
		}
	}

	raw := make([]string, width)
	copy(raw, header)
	columns := uniqueHeaders(raw)

	rows := make([]table.Row, len(cells))
	for i, row := range cells {
		rows[i] = table.Row(row)
	}
	return table.New(columns, rows)
}

// uniqueHeaders names empty headers and de-duplicates repeated ones.
func uniqueHeaders(headers []string) []string {
	out := make([]string, len(headers))
	seen := make(map[string]int, len(headers))
	taken := make(map[string]bool, len(headers))

	for i, h := range headers {
		if strings.TrimSpace(h) == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		taken[h] = true
		out[i] = h
	}

	for i, h := range out {
		n := seen[h]
		seen[h] = n + 1
		if n == 0 {
			continue
		}
		name := fmt.Sprintf("%s.%d", h, n)
		for taken[name] {
			n++
			name = fmt.Sprintf("%s.%d", h, n)
		}
		seen[h] = n + 1
		taken[name] = true
		out[i] = name
	}
	return out
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// missingSet turns the configured tokens into a lookup set.
func missingSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		set[tok] = true
	}
	return set
}
