// =============================================================================
// Order Code Filter - Codes Command
// =============================================================================
//
// COMMAND USAGE:
//   orderfilter codes <file> [--rows 0,2]
//
// Without --rows the codes file is printed as a table with its row indices.
// With --rows the code of each chosen row is extracted and printed as the
// code list that the filter command would use.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// codesRows are the grid rows to take codes from.
var codesRows []int

var codesCmd = &cobra.Command{
	Use:   "codes <file>",
	Short: "Show a codes file or the codes of selected rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if err := s.OpenCodes(args[0]); err != nil {
			return userError(err)
		}

		out := cmd.OutOrStdout()
		if !cmd.Flags().Changed("rows") {
			return renderView(out, indexed(s.Snapshot()))
		}

		if err := s.LoadSelectedCodes(codesRows); err != nil {
			return userError(err)
		}
		v := s.Snapshot()
		renderCodeList(out, v)
		fmt.Fprintf(out, "Loaded %d code(s)\n", len(v.CodeList))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(codesCmd)

	codesCmd.Flags().IntSliceVar(
		&codesRows,
		"rows",
		nil,
		"Row indices to take codes from, in order (e.g. 0,2)",
	)
}
