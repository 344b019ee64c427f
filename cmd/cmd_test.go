package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/order-code-filter/internal/config"
	"github.com/ginjaninja78/order-code-filter/internal/format"
)

func writeWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		filterCodesFile, filterRows, filterCodes, filterSelect = "", nil, nil, nil
		filterOut, filterExport, codesRows = "", false, nil
		for _, c := range rootCmd.Commands() {
			c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		}
	})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRenderGrid(t *testing.T) {
	var buf bytes.Buffer
	g := format.Grid{
		Columns: []format.GridColumn{
			{Name: "Code"},
			{Name: "Amount", Currency: true, Align: format.AlignRight},
		},
		Cells: [][]string{
			{"X", "$5.00"},
			{"YY", "$1,234.50"},
		},
	}
	require.NoError(t, renderGrid(&buf, g))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Code"))
	assert.Contains(t, lines[1], "---------")
	assert.Contains(t, lines[2], "    $5.00")
	assert.Contains(t, lines[3], "$1,234.50")
}

func TestExportPath(t *testing.T) {
	prev := appConfig
	t.Cleanup(func() { appConfig = prev })
	appConfig = config.Default()
	appConfig.ExportDir = "exports"
	appConfig.OutputNameFormat = "{original}_filtered"

	_, ok := exportPath("", false, "orders.xlsx")
	assert.False(t, ok)

	path, ok := exportPath("", true, "data/orders.xlsx")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join("exports", "orders_filtered.xlsx"), path)

	dir := t.TempDir()
	path, _ = exportPath(dir, false, "orders.csv")
	assert.Equal(t, filepath.Join(dir, "orders_filtered.xlsx"), path)

	path, _ = exportPath("out.csv", false, "orders.xlsx")
	assert.Equal(t, "out.csv", path)
}

func TestFilterCommand(t *testing.T) {
	dir := t.TempDir()
	codesPath := filepath.Join(dir, "codes.xlsx")
	ordersPath := filepath.Join(dir, "orders.xlsx")
	outPath := filepath.Join(dir, "out.csv")

	writeWorkbook(t, codesPath, [][]any{
		{"Description", "Code"},
		{"Servers", "X"},
		{"Storage", "Y"},
	})
	writeWorkbook(t, ordersPath, [][]any{
		{"HPE Order #", "Product Line Code", "Invoice Value (no tax)"},
		{"o1", "X", 10},
		{"o2", "Y", 20},
		{"o3", "X", 5},
	})

	out, err := execute(t, "filter", ordersPath, "--codes", codesPath, "--rows", "0", "--out", outPath)
	require.NoError(t, err)

	assert.Contains(t, out, "[0] X")
	assert.Contains(t, out, "o1")
	assert.Contains(t, out, "o3")
	assert.NotContains(t, out, "o2")
	assert.Contains(t, out, "View Filtered")
	assert.Contains(t, out, "Rows: 2")
	assert.FileExists(t, outPath)
}

func TestFilterCommand_RequiresCodes(t *testing.T) {
	_, err := execute(t, "filter", "orders.xlsx")
	assert.Error(t, err)
}

func TestOrdersCommand_NoRequiredColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.xlsx")
	writeWorkbook(t, path, [][]any{{"Name"}, {"a"}})

	_, err := execute(t, "orders", path)
	require.Error(t, err)
	assert.Equal(t, "No required Order columns found.", err.Error())
}
