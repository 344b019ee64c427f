// =============================================================================
// Order Code Filter - Table
// =============================================================================
//
// This package contains the in-memory table shared by the loader, the orders
// engine, the formatter and the code extractor. Keeping it in its own package
// avoids import cycles between those modules.
//
// DATA LAYOUT:
//   A Table is an ordered list of unique column names plus row-major values.
//   Every row has exactly one value per column. A nil value is an absent
//   (missing) cell.
//
// IMMUTABILITY:
//   Tables are never modified after construction. Select and Filter return
//   new tables and never share row slices with their source.
//
// =============================================================================

package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// TABLE STRUCTURE
// =============================================================================

// Row is one record of a table, aligned with the table's columns.
type Row []any

// Table is an ordered sequence of named columns with row-aligned values.
type Table struct {
	columns []string
	index   map[string]int
	rows    []Row
}

// New builds a table from column names and rows.
//
// Rows shorter than the column list are padded with absent values. Rows
// longer than the column list are an error, as are duplicate column names.
// The rows are copied, so the caller may reuse its slices.
func New(columns []string, rows []Row) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", name)
		}
		index[name] = i
	}

	copied := make([]Row, len(rows))
	for i, row := range rows {
		if len(row) > len(columns) {
			return nil, fmt.Errorf("row %d has %d values, table has %d columns", i, len(row), len(columns))
		}
		r := make(Row, len(columns))
		copy(r, row)
		copied[i] = r
	}

	return &Table{
		columns: append([]string(nil), columns...),
		index:   index,
		rows:    copied,
	}, nil
}

// Empty returns a table with no columns and no rows.
func Empty() *Table {
	return &Table{index: map[string]int{}}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool {
	return len(t.rows) == 0
}

// Row returns a copy of row i.
func (t *Table) Row(i int) Row {
	return append(Row(nil), t.rows[i]...)
}

// Value returns the value at row i, column col.
func (t *Table) Value(i, col int) any {
	return t.rows[i][col]
}

// Column returns a copy of every value in the named column, or nil and false
// when the column does not exist.
func (t *Table) Column(name string) ([]any, bool) {
	col, ok := t.index[name]
	if !ok {
		return nil, false
	}
	values := make([]any, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[col]
	}
	return values, true
}

// ColumnIndex returns the position of the named column. The match is exact
// and case-sensitive. It returns -1 when the column is absent.
func (t *Table) ColumnIndex(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// ColumnIndexFold returns the position of the first column whose name equals
// name under Unicode case folding, or -1.
func (t *Table) ColumnIndexFold(name string) int {
	for i, col := range t.columns {
		if strings.EqualFold(col, name) {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has a column with exactly this name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// =============================================================================
// DERIVED TABLES
// =============================================================================

// Select returns a new table holding only the named columns, in the order
// given. Names that are not present are skipped.
func (t *Table) Select(names []string) *Table {
	var cols []string
	var positions []int
	for _, name := range names {
		if i, ok := t.index[name]; ok {
			cols = append(cols, name)
			positions = append(positions, i)
		}
	}

	rows := make([]Row, len(t.rows))
	for r, row := range t.rows {
		out := make(Row, len(positions))
		for j, p := range positions {
			out[j] = row[p]
		}
		rows[r] = out
	}

	index := make(map[string]int, len(cols))
	for i, name := range cols {
		index[name] = i
	}
	return &Table{columns: cols, index: index, rows: rows}
}

// Filter returns a new table with the rows for which keep returns true.
// Surviving rows keep their relative order.
func (t *Table) Filter(keep func(Row) bool) *Table {
	var rows []Row
	for _, row := range t.rows {
		if keep(row) {
			rows = append(rows, append(Row(nil), row...))
		}
	}
	return &Table{columns: t.columns, index: t.index, rows: rows}
}

// =============================================================================
// VALUE TEXT FORM
// =============================================================================

// IsMissing reports whether v is an absent value. NaN floats count as absent.
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}

// Text returns the text form of a value, used for display passthrough and
// for comparing codes. Absent values have an empty text form.
func Text(v any) string {
	if IsMissing(v) {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
