package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showQuery string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the inventory table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		table, err := a.Service.Table(cmd.Context(), showQuery)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, table)
		}
		if len(table.Rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no products found")
			return nil
		}
		return printRows(cmd.OutOrStdout(), table.Columns, table.Rows)
	},
}

func init() {
	showCmd.Flags().StringVarP(&showQuery, "query", "q", "", "Filter products by name, ignoring case and accents")
	rootCmd.AddCommand(showCmd)
}
