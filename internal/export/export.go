// =============================================================================
// Order Code Filter - Export Module
// =============================================================================
//
// This module writes a formatted grid to a file so a filtered view can be
// shared outside the application. The grid's display strings are written as
// they are shown: currency cells keep their "$1,234.50" text.
//
// SUPPORTED OUTPUTS:
//   .xlsx - one sheet, bold header row frozen at the top (excelize)
//   .csv  - header line followed by one line per row (encoding/csv)
//
// =============================================================================

package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/order-code-filter/internal/format"
	"github.com/ginjaninja78/order-code-filter/pkg/utils"
)

// ErrUnsupportedExtension is returned for output paths that are neither
// .xlsx nor .csv.
var ErrUnsupportedExtension = errors.New("unsupported export extension")

// SheetName is the name of the sheet written to workbook exports.
const SheetName = "Sheet1"

// Write saves grid to path, choosing the output format by extension. The
// parent directory is created if needed.
//
// PARAMETERS:
//   - path: The output file path. Its extension selects the format.
//   - grid: The formatted table to write.
//
// RETURNS:
//   - An error wrapping ErrUnsupportedExtension, or the write failure.
func Write(path string, grid format.Grid) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".csv" {
		return fmt.Errorf("%w: %q", ErrUnsupportedExtension, filepath.Ext(path))
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	if utils.ClassifyFile(path) == utils.KindWorkbook {
		return writeWorkbook(path, grid)
	}
	return writeCSV(path, grid)
}

// =============================================================================
// WORKBOOK OUTPUT
// =============================================================================

func writeWorkbook(path string, grid format.Grid) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := setRow(f, 1, grid.Headers()); err != nil {
		return err
	}
	for i, cells := range grid.Cells {
		if err := setRow(f, i+2, cells); err != nil {
			return err
		}
	}

	if len(grid.Columns) > 0 {
		if err := styleHeader(f, len(grid.Columns)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// setRow writes texts as string cells starting in column A of row.
func setRow(f *excelize.File, row int, texts []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]any, len(texts))
	for i, s := range texts {
		values[i] = s
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// styleHeader makes row 1 bold and freezes it.
func styleHeader(f *excelize.File, columns int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	return f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// =============================================================================
// CSV OUTPUT
// =============================================================================

func writeCSV(path string, grid format.Grid) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(file)
	if err := w.Write(grid.Headers()); err != nil {
		return err
	}
	if err := w.WriteAll(grid.Cells); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
