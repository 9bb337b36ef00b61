package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rl1809/grocery-stock/internal/app"
	"github.com/rl1809/grocery-stock/internal/config"
)

var (
	sheetFile  string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "stockctl",
	Short: "Grocery stock spreadsheet tool",
	Long: `Inspect and update the grocery stock spreadsheet.

Commands:
  show     Print the inventory table, optionally filtered by product.
  move     Register a stock entry or exit for one product.
  lowest   List the products with the lowest stock.
  export   Write the inventory to a new workbook.
  inspect  Show how the sheet headers were mapped to fields.
  stress   Fire concurrent exits at one product and verify no overselling.

Configuration is read from .env and the environment (ESTOQUE_FILE,
REDIS_ADDR, MYSQL_DSN, ...). --file overrides ESTOQUE_FILE.

Examples:
  stockctl show -q feijao
  stockctl move "Feijão" 5 --kind entrada
  stockctl lowest -n 5
  stockctl export -o estoque_copia.xlsx`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&sheetFile, "file", "f", "", "Path to the stock workbook")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output raw JSON instead of tables")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if sheetFile != "" {
		cfg.Sheet.Path = sheetFile
	}
	return app.New(ctx, cfg)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
