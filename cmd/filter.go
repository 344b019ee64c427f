// =============================================================================
// Order Code Filter - Filter Command
// =============================================================================
//
// This file defines the 'filter' command, which runs the whole user flow in
// one step.
//
// COMMAND USAGE:
//   orderfilter filter <orders-file> [flags]
//
// FLAGS:
//   --codes   : Codes file to take the code list from
//   --rows    : Rows of the codes file to take codes from (default: all)
//   --code    : A code to add to the code list (repeatable, instead of --codes)
//   --select  : Indices of the code list entries to filter by (default: all)
//   --out     : Export file or directory (.xlsx or .csv)
//   --export  : Export to the configured export directory
//
// PROCESSING PIPELINE:
//   1. Build the code list from --codes/--rows or from --code
//   2. Load the orders file and keep the known order columns
//   3. Filter the orders by the selected codes
//   4. Print the filtered view
//   5. Optionally export it
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/order-code-filter/internal/export"
	"github.com/ginjaninja78/order-code-filter/internal/session"
	"github.com/ginjaninja78/order-code-filter/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	filterCodesFile string
	filterRows      []int
	filterCodes     []string
	filterSelect    []int
	filterOut       string
	filterExport    bool
)

// =============================================================================
// FILTER COMMAND DEFINITION
// =============================================================================

var filterCmd = &cobra.Command{
	Use:   "filter <orders-file>",
	Short: "Filter an orders file by product line codes",
	Long: `The filter command builds a code list, loads an orders file and shows the
orders whose Product Line Code is one of the selected codes.

The code list comes either from the "code" column of a codes file (--codes,
optionally narrowed with --rows) or from repeated --code flags. By default every
code in the list is selected; --select picks entries by index.

Examples:
  orderfilter filter orders.xlsx --codes codes.xlsx --rows 0,2
  orderfilter filter orders.xlsx --code 30 --code 3X --export`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFilter(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().StringVar(&filterCodesFile, "codes", "", "Codes file to take the code list from")
	filterCmd.Flags().IntSliceVar(&filterRows, "rows", nil, "Rows of the codes file to take codes from (default: all)")
	filterCmd.Flags().StringArrayVar(&filterCodes, "code", nil, "Code to filter by (repeatable)")
	filterCmd.Flags().IntSliceVar(&filterSelect, "select", nil, "Indices of code list entries to filter by (default: all)")
	filterCmd.Flags().StringVar(&filterOut, "out", "", "Export file or directory (.xlsx or .csv)")
	filterCmd.Flags().BoolVar(&filterExport, "export", false, "Export to the configured export directory")

	filterCmd.MarkFlagsMutuallyExclusive("codes", "code")
}

// =============================================================================
// MAIN FILTER FUNCTION
// =============================================================================

func runFilter(cmd *cobra.Command, ordersFile string) error {
	if filterCodesFile == "" && len(filterCodes) == 0 {
		return errors.New("either --codes or --code is required")
	}

	s, err := newSession()
	if err != nil {
		return err
	}

	// STEP 1: build the code list.
	if err := buildCodeList(s, cmd.Flags().Changed("rows")); err != nil {
		return userError(err)
	}

	// STEP 2: load the orders.
	if err := s.OpenOrders(ordersFile); err != nil {
		return userError(err)
	}

	// STEP 3: filter.
	selected := filterSelect
	if !cmd.Flags().Changed("select") {
		selected = allIndices(len(s.Snapshot().CodeList))
	}
	if err := s.Filter(selected); err != nil {
		return userError(err)
	}

	// STEP 4: show.
	v := s.Snapshot()
	out := cmd.OutOrStdout()
	renderCodeList(out, v)
	fmt.Fprintln(out)
	if err := renderView(out, v); err != nil {
		return err
	}

	// STEP 5: export.
	path, ok := exportPath(filterOut, filterExport, ordersFile)
	if !ok {
		return nil
	}
	if err := export.Write(path, v.Grid); err != nil {
		return err
	}
	logger.Info("view exported", slog.String("path", path), slog.Int("rows", v.RowCount()))
	fmt.Fprintf(out, "Exported to %s\n", path)
	return nil
}

// buildCodeList fills the session's code list from the codes file or the
// --code flags.
func buildCodeList(s *session.Session, rowsGiven bool) error {
	if filterCodesFile == "" {
		values := make([]any, len(filterCodes))
		for i, c := range filterCodes {
			values[i] = c
		}
		s.SetCodeList(values)
		return nil
	}

	if err := s.OpenCodes(filterCodesFile); err != nil {
		return err
	}
	rows := filterRows
	if !rowsGiven {
		rows = allIndices(s.Snapshot().RowCount())
	}
	return s.LoadSelectedCodes(rows)
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// exportPath resolves where the filtered view is written. A directory, or an
// empty --out with --export, gets a generated file name.
func exportPath(out string, toExportDir bool, ordersFile string) (string, bool) {
	if out == "" && !toExportDir {
		return "", false
	}

	name := utils.GenerateOutputFileName(
		appConfig.OutputNameFormat,
		map[string]string{"original": utils.BaseName(ordersFile)},
		".xlsx",
	)

	switch {
	case out == "":
		return filepath.Join(appConfig.ExportDir, name), true
	case utils.IsDir(out), strings.HasSuffix(out, "/"), strings.HasSuffix(out, string(os.PathSeparator)):
		return filepath.Join(out, name), true
	default:
		return out, true
	}
}
