package session

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/order-code-filter/internal/codes"
	"github.com/ginjaninja78/order-code-filter/internal/loader"
	"github.com/ginjaninja78/order-code-filter/internal/orders"
)

func newSession() *Session {
	return New(loader.DefaultOptions(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func workbook(t *testing.T, dir, name string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

type fixture struct {
	codes   string
	orders  string
	other   string
	noCodes string
}

func newFixture(t *testing.T) fixture {
	dir := t.TempDir()
	return fixture{
		codes: workbook(t, dir, "codes.xlsx", [][]any{
			{"Description", "CODE"},
			{"Servers", "X"},
			{"Storage", "Y"},
			{"Network", "Z"},
		}),
		orders: workbook(t, dir, "orders.xlsx", [][]any{
			{"Unrelated", "HPE Order #", "Product Line Code", "Invoice Value (no tax)"},
			{"u", "o1", "X", 10},
			{"u", "o2", "Y", nil},
			{"u", "o3", "X", 5},
			{"u", "o4", "Z", 1234.5},
		}),
		other: workbook(t, dir, "other.xlsx", [][]any{
			{"Name", "Value"},
			{"a", 1},
		}),
		noCodes: workbook(t, dir, "nocodes.xlsx", [][]any{
			{"Description", "Codes"},
			{"Servers", "X"},
		}),
	}
}

func TestInitialState(t *testing.T) {
	s := newSession()
	v := s.Snapshot()

	assert.NotEmpty(t, v.SessionID)
	assert.Equal(t, s.ID(), v.SessionID)
	assert.Equal(t, ModeEmpty, v.Mode)
	assert.Equal(t, 0, v.RowCount())
	assert.Empty(t, v.CodeList)
	assert.False(t, v.CodeActions)
	assert.False(t, v.OrderActions)
	assert.False(t, s.CanLoadCodes(1))
}

func TestOpenCodes(t *testing.T) {
	fx := newFixture(t)
	s := newSession()

	require.NoError(t, s.OpenCodes(fx.codes))
	v := s.Snapshot()

	assert.Equal(t, ModeCodes, v.Mode)
	assert.Equal(t, StatusCodesLoaded, v.Status)
	assert.Equal(t, 3, v.RowCount())
	assert.Equal(t, []string{"Description", "CODE"}, v.Grid.Headers())
	assert.True(t, v.CodeActions)
	assert.False(t, v.OrderActions)

	assert.True(t, s.CanLoadCodes(1))
	assert.False(t, s.CanLoadCodes(0))
}

func TestOpenCodes_FailureKeepsState(t *testing.T) {
	fx := newFixture(t)
	s := newSession()
	require.NoError(t, s.OpenCodes(fx.codes))
	before := s.Snapshot()

	err := s.OpenCodes(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)

	var loadErr *loader.LoadError
	assert.True(t, errors.As(err, &loadErr))
	assert.Equal(t, before, s.Snapshot())
}

func TestLoadSelectedCodes(t *testing.T) {
	fx := newFixture(t)
	s := newSession()
	require.NoError(t, s.OpenCodes(fx.codes))

	require.NoError(t, s.LoadSelectedCodes([]int{2, 0}))
	v := s.Snapshot()

	assert.Equal(t, []string{"Z", "X"}, v.CodeList)
	assert.Equal(t, ModeEmpty, v.Mode)
	assert.Equal(t, 0, v.RowCount())
	assert.False(t, v.CodeActions)
	assert.False(t, s.CanLoadCodes(1))
}

func TestLoadSelectedCodes_NoCodeColumn(t *testing.T) {
	fx := newFixture(t)
	s := newSession()
	s.SetCodeList([]any{"keep"})
	require.NoError(t, s.OpenCodes(fx.noCodes))

	err := s.LoadSelectedCodes([]int{0})
	assert.ErrorIs(t, err, codes.ErrNoCodeColumn)

	v := s.Snapshot()
	assert.Equal(t, []string{"keep"}, v.CodeList)
	assert.Equal(t, ModeCodes, v.Mode)
}

func TestLoadSelectedCodes_RequiresCodesView(t *testing.T) {
	fx := newFixture(t)
	s := newSession()
	require.NoError(t, s.OpenOrders(fx.orders))

	assert.ErrorIs(t, s.LoadSelectedCodes([]int{0}), ErrCodesNotLoaded)
}

func TestOpenOrders(t *testing.T) {
	fx := newFixture(t)
	s := newSession()
	require.NoError(t, s.OpenCodes(fx.codes))
	require.NoError(t, s.OpenOrders(fx.orders))

	v := s.Snapshot()
	assert.Equal(t, ModeOrders, v.Mode)
	assert.Equal(t, "Orders: orders.xlsx", v.Status)
	assert.Equal(t, []string{"HPE Order #", "Product Line Code", "Invoice Value (no tax)"}, v.Grid.Headers())
	assert.Equal(t, 4, v.RowCount())
	assert.Equal(t, "$1,234.50", v.Grid.Cells[3][2])
	assert.True(t, v.OrderActions)
	assert.False(t, v.CodeActions)
	assert.False(t, s.CanLoadCodes(1))
}

func TestOpenOrders_NoRequiredColumns(t *testing.T) {
	fx := newFixture(t)
	s := newSession()
	require.NoError(t, s.OpenOrders(fx.orders))
	before := s.Snapshot()
	canonical := s.Engine().Canonical()

	err := s.OpenOrders(fx.other)
	assert.ErrorIs(t, err, orders.ErrNoRequiredColumns)
	assert.Same(t, canonical, s.Engine().Canonical())
	assert.Equal(t, before, s.Snapshot())
}

func TestFilterAndReset(t *testing.T) {
	fx := newFixture(t)
	s := newSession()
	require.NoError(t, s.OpenCodes(fx.codes))
	require.NoError(t, s.LoadSelectedCodes([]int{0, 1}))
	require.NoError(t, s.OpenOrders(fx.orders))

	require.NoError(t, s.Filter([]int{0}))
	v := s.Snapshot()
	assert.Equal(t, StatusFiltered, v.Status)
	assert.Equal(t, []int{0}, v.SelectedCodes)
	require.Equal(t, 2, v.RowCount())
	assert.Equal(t, []string{"o1", "X", "$10.00"}, v.Grid.Cells[0])
	assert.Equal(t, []string{"o3", "X", "$5.00"}, v.Grid.Cells[1])

	require.NoError(t, s.Filter([]int{1}))
	v = s.Snapshot()
	require.Equal(t, 1, v.RowCount())
	assert.Equal(t, []string{"o2", "Y", ""}, v.Grid.Cells[0])

	s.Reset()
	v = s.Snapshot()
	assert.Equal(t, StatusFiltersReset, v.Status)
	assert.Equal(t, 4, v.RowCount())
	assert.Empty(t, v.SelectedCodes)

	s.Reset()
	assert.Equal(t, v, s.Snapshot())
}

func TestFilter_EmptySelection(t *testing.T) {
	fx := newFixture(t)
	s := newSession()
	require.NoError(t, s.OpenOrders(fx.orders))
	before := s.Snapshot()

	assert.ErrorIs(t, s.Filter(nil), orders.ErrEmptySelection)
	assert.Equal(t, before, s.Snapshot())
}

func TestFilter_IndexOutOfRange(t *testing.T) {
	fx := newFixture(t)
	s := newSession()
	require.NoError(t, s.OpenOrders(fx.orders))
	s.SetCodeList([]any{"X"})

	assert.ErrorIs(t, s.Filter([]int{1}), codes.ErrRowOutOfRange)
}

func TestFilter_NoOrders(t *testing.T) {
	s := newSession()
	s.SetCodeList([]any{"X"})

	assert.ErrorIs(t, s.Filter([]int{0}), orders.ErrNoDataLoaded)
}

func TestCancel_KeepsOrders(t *testing.T) {
	fx := newFixture(t)
	s := newSession()
	require.NoError(t, s.OpenOrders(fx.orders))
	canonical := s.Engine().Canonical()

	s.Cancel()
	v := s.Snapshot()
	assert.Equal(t, ModeEmpty, v.Mode)
	assert.Equal(t, 0, v.RowCount())
	assert.Same(t, canonical, s.Engine().Canonical())

	s.Reset()
	assert.Equal(t, 4, s.Snapshot().RowCount())
}

func TestReset_WithoutOrdersIsNoOp(t *testing.T) {
	fx := newFixture(t)
	s := newSession()
	require.NoError(t, s.OpenCodes(fx.codes))
	before := s.Snapshot()

	s.Reset()
	assert.Equal(t, before, s.Snapshot())
}

func TestReset_EmptyOrdersIsNoOp(t *testing.T) {
	dir := t.TempDir()
	empty := workbook(t, dir, "empty-orders.xlsx", [][]any{{"Product Line Code"}})
	fx := newFixture(t)

	s := newSession()
	require.NoError(t, s.OpenOrders(empty))
	require.NoError(t, s.OpenCodes(fx.codes))
	before := s.Snapshot()

	s.Reset()
	assert.Equal(t, before, s.Snapshot())
}

func TestMessage(t *testing.T) {
	cases := []struct {
		err      error
		text     string
		severity Severity
	}{
		{orders.ErrNoRequiredColumns, "No required Order columns found.", SeverityWarning},
		{orders.ErrEmptySelection, "Please select items in the Side Frame first.", SeverityInfo},
		{orders.ErrMissingFilterColumn, "Required column 'Product Line Code' not found.", SeverityError},
		{codes.ErrNoCodeColumn, "No 'code' column found.", SeverityError},
		{&loader.LoadError{Path: "a.xls", Err: loader.ErrUnsupportedFormat}, "Could not read file: unsupported spreadsheet format", SeverityError},
		{errors.New("boom"), "boom", SeverityError},
	}
	for _, tc := range cases {
		text, sev := Message(tc.err)
		assert.Equal(t, tc.text, text)
		assert.Equal(t, tc.severity, sev)
	}

	text, _ := Message(nil)
	assert.Empty(t, text)
}

func TestOpenOrders_NumberFormattedCells(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{
		"Order Entry Date", "Product Line Code", "Ordered Quantity", "Invoice Value (no tax)",
	}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{45000, "X", 1500, 1234.5}))

	for cell, numFmt := range map[string]int{"A2": 14, "C2": 3, "D2": 4} {
		id, err := f.NewStyle(&excelize.Style{NumFmt: numFmt})
		require.NoError(t, err)
		require.NoError(t, f.SetCellStyle("Sheet1", cell, cell, id))
	}
	path := filepath.Join(t.TempDir(), "formatted.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	s := newSession()
	require.NoError(t, s.OpenOrders(path))

	v := s.Snapshot()
	assert.Equal(t, []string{"Order Entry Date", "Product Line Code", "Ordered Quantity", "Invoice Value (no tax)"}, v.Grid.Headers())
	require.Equal(t, 1, v.RowCount())
	assert.Equal(t, []string{"2023-03-15 00:00:00", "X", "1500", "$1,234.50"}, v.Grid.Cells[0])
}
