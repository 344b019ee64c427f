package cmd

import (
	"github.com/spf13/cobra"
)

// ordersCmd shows the catalog columns of an orders file.
var ordersCmd = &cobra.Command{
	Use:   "orders <file>",
	Short: "Show the order columns of an orders file",
	Long: `Load an orders file and show only the known order columns, with currency
columns formatted as dollar amounts. Other columns are dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if err := s.OpenOrders(args[0]); err != nil {
			return userError(err)
		}
		return renderView(cmd.OutOrStdout(), s.Snapshot())
	},
}

func init() {
	rootCmd.AddCommand(ordersCmd)
}
