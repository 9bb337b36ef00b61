package main

import (
	"github.com/spf13/cobra"

	"github.com/rl1809/grocery-stock/internal/core/domain"
	"github.com/rl1809/grocery-stock/internal/core/service"
)

var lowestLimit int

var lowestCmd = &cobra.Command{
	Use:   "lowest",
	Short: "List products with the lowest stock",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		rows, err := a.Service.Lowest(cmd.Context(), lowestLimit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, rows)
		}
		return printRows(cmd.OutOrStdout(), domain.Fields, rows)
	},
}

func init() {
	lowestCmd.Flags().IntVarP(&lowestLimit, "limit", "n", service.DefaultLowestLimit, "Number of products to list")
	rootCmd.AddCommand(lowestCmd)
}
