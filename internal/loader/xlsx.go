package loader

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/xuri/nfp"
)

// builtInDateFormats are the built-in number format IDs that display a
// serial number as a date or time.
var builtInDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// readWorkbook reads the first sheet of a workbook.
//
// Each sheet is read twice: once with cell number formats applied and once
// with raw values. A numeric cell yields its stored number whatever its
// number format, so "#,##0.00" amounts read as 1234.5 and not "1,234.50".
// Numeric cells with a date or time format yield a time.Time. Every other
// cell keeps its displayed text.
func readWorkbook(path string, opts Options) ([]string, [][]any, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	// The first sheet by position is the default sheet.
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, fmt.Errorf("%w: workbook has no sheets", ErrNoData)
	}

	shown, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}
	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read raw rows: %w", err)
	}

	if len(shown) == 0 || isRowEmpty(shown[0]) {
		return nil, nil, fmt.Errorf("%w: sheet %q has no header row", ErrNoData, sheetName)
	}

	cr := newCellReader(f, sheetName)
	missing := missingSet(opts.MissingValues)
	header := shown[0]

	var cells [][]any
	for r := 1; r < len(shown); r++ {
		row := shown[r]
		if isRowEmpty(row) {
			continue
		}

		var rawRow []string
		if r < len(raw) {
			rawRow = raw[r]
		}

		values := make([]any, len(row))
		for c, text := range row {
			if text == "" || missing[text] {
				continue
			}
			values[c] = text

			if c >= len(rawRow) {
				continue
			}
			if v, ok := cr.numeric(c, r, rawRow[c]); ok {
				values[c] = v
			}
		}
		cells = append(cells, values)
	}

	return header, cells, nil
}

// cellReader resolves the stored value of numeric cells on one sheet.
type cellReader struct {
	f        *excelize.File
	sheet    string
	date1904 bool

	// dateStyles caches whether a style ID carries a date format.
	dateStyles map[int]bool
}

func newCellReader(f *excelize.File, sheet string) *cellReader {
	cr := &cellReader{f: f, sheet: sheet, dateStyles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		cr.date1904 = *props.Date1904
	}
	return cr
}

// numeric returns the stored value of the cell at 0-based (col, row) when it
// is a number cell: a float64, or a time.Time under a date format. ok is
// false for text cells, including text that looks numeric.
func (cr *cellReader) numeric(col, row int, rawText string) (any, bool) {
	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return nil, false
	}
	kind, err := cr.f.GetCellType(cr.sheet, ref)
	if err != nil {
		return nil, false
	}
	if kind != excelize.CellTypeUnset && kind != excelize.CellTypeNumber {
		return nil, false
	}

	num, err := strconv.ParseFloat(strings.TrimSpace(rawText), 64)
	if err != nil {
		return nil, false
	}

	if cr.isDate(ref) {
		t, err := excelize.ExcelDateToTime(num, cr.date1904)
		if err == nil {
			return t.Truncate(time.Second), true
		}
	}
	return num, true
}

// isDate reports whether the cell's number format shows a date or time.
func (cr *cellReader) isDate(ref string) bool {
	styleID, err := cr.f.GetCellStyle(cr.sheet, ref)
	if err != nil || styleID == 0 {
		return false
	}
	if isDate, ok := cr.dateStyles[styleID]; ok {
		return isDate
	}

	isDate := false
	if style, err := cr.f.GetStyle(styleID); err == nil {
		switch {
		case style.CustomNumFmt != nil:
			isDate = isDateFormatCode(*style.CustomNumFmt)
		default:
			isDate = builtInDateFormats[style.NumFmt]
		}
	}
	cr.dateStyles[styleID] = isDate
	return isDate
}

// isDateFormatCode reports whether a custom number format code contains
// date or time tokens.
func isDateFormatCode(code string) bool {
	p := nfp.NumberFormatParser()
	for _, section := range p.Parse(code) {
		for _, tok := range section.Items {
			if tok.TType == nfp.TokenTypeDateTimes || tok.TType == nfp.TokenTypeElapsedDateTimes {
				return true
			}
		}
	}
	return false
}
