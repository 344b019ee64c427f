package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ginjaninja78/order-code-filter/internal/format"
	"github.com/ginjaninja78/order-code-filter/internal/session"
)

// renderView prints the grid of v as an aligned table followed by the status
// line and the row counter.
func renderView(w io.Writer, v session.View) error {
	if len(v.Grid.Columns) > 0 {
		if err := renderGrid(w, v.Grid); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	if v.Status != "" {
		fmt.Fprintln(w, v.Status)
	}
	fmt.Fprintf(w, "Rows: %d\n", v.RowCount())
	return nil
}

// renderGrid writes a header, an underline and one line per row. Currency
// columns are right aligned.
func renderGrid(w io.Writer, g format.Grid) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	widths := make([]int, len(g.Columns))
	for j, c := range g.Columns {
		widths[j] = len([]rune(c.Name))
	}
	for _, row := range g.Cells {
		for j, cell := range row {
			if n := len([]rune(cell)); j < len(widths) && n > widths[j] {
				widths[j] = n
			}
		}
	}

	header := make([]string, len(g.Columns))
	rule := make([]string, len(g.Columns))
	for j, c := range g.Columns {
		header[j] = c.Name
		rule[j] = strings.Repeat("-", widths[j])
	}
	writeLine(tw, header)
	writeLine(tw, rule)

	for _, row := range g.Cells {
		line := make([]string, len(row))
		for j, cell := range row {
			if j < len(g.Columns) && g.Columns[j].Align == format.AlignRight {
				cell = fmt.Sprintf("%*s", widths[j], cell)
			}
			line[j] = cell
		}
		writeLine(tw, line)
	}
	return tw.Flush()
}

func writeLine(w io.Writer, cells []string) {
	fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
}

// renderCodeList prints the code list with the index to pass to --select.
func renderCodeList(w io.Writer, v session.View) {
	if len(v.CodeList) == 0 {
		return
	}
	fmt.Fprintln(w, "Codes:")
	for i, code := range v.CodeList {
		fmt.Fprintf(w, "  [%d] %s\n", i, code)
	}
}

// indexed returns v with a leading "#" column holding each row's index, the
// number a user passes to --rows.
func indexed(v session.View) session.View {
	cols := append([]format.GridColumn{{Name: "#", Align: format.AlignRight}}, v.Grid.Columns...)
	cells := make([][]string, len(v.Grid.Cells))
	for i, row := range v.Grid.Cells {
		cells[i] = append([]string{strconv.Itoa(i)}, row...)
	}
	v.Grid = format.Grid{Columns: cols, Cells: cells}
	return v
}
