package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the inventory to a new workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		data, err := a.Service.Export(cmd.Context())
		if err != nil {
			return err
		}

		path := exportOutput
		if path == "" {
			path = fmt.Sprintf("estoque_%s.xlsx", time.Now().Format("20060102_150405"))
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default estoque_<timestamp>.xlsx)")
	rootCmd.AddCommand(exportCmd)
}
