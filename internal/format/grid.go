package format

import "github.com/ginjaninja78/order-code-filter/internal/table"

// Alignment is the horizontal placement of a column's cells.
type Alignment int

const (
	// AlignLeft is used for text and identifiers.
	AlignLeft Alignment = iota

	// AlignRight is used for currency amounts.
	AlignRight
)

// GridColumn describes one displayed column.
type GridColumn struct {
	Name     string
	Currency bool
	Align    Alignment
}

// Grid is a table rendered to display strings. Cells[i][j] is the text of
// row i in column j.
type Grid struct {
	Columns []GridColumn
	Cells   [][]string
}

// RowCount returns the number of displayed rows.
func (g Grid) RowCount() int {
	return len(g.Cells)
}

// Headers returns the column names in order.
func (g Grid) Headers() []string {
	names := make([]string, len(g.Columns))
	for i, c := range g.Columns {
		names[i] = c.Name
	}
	return names
}

// NewGrid formats every cell of t. isCurrency decides which columns hold
// amounts; a nil isCurrency treats no column as currency.
func NewGrid(t *table.Table, isCurrency func(column string) bool) Grid {
	if t == nil {
		return Grid{}
	}

	names := t.Columns()
	columns := make([]GridColumn, len(names))
	for i, name := range names {
		cur := isCurrency != nil && isCurrency(name)
		align := AlignLeft
		if cur {
			align = AlignRight
		}
		columns[i] = GridColumn{Name: name, Currency: cur, Align: align}
	}

	cells := make([][]string, t.Len())
	for r := 0; r < t.Len(); r++ {
		row := make([]string, len(columns))
		for c, col := range columns {
			row[c] = Value(t.Value(r, c), col.Currency)
		}
		cells[r] = row
	}

	return Grid{Columns: columns, Cells: cells}
}
