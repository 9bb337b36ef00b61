package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show how sheet headers map to fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		table, res, err := a.Store.Inspect(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, map[string]any{
				"columns":   table.Columns,
				"matches":   res.Matches,
				"unmatched": res.Unmatched,
				"ambiguous": res.Ambiguous,
				"fallback":  res.Fallback,
				"row_count": len(table.Rows),
			})
		}

		out := cmd.OutOrStdout()
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FIELD\tCOLUMN\tHEADER")
		for _, m := range res.Matches {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", m.Field, m.Column+1, m.Header)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		if len(res.Unmatched) > 0 {
			fmt.Fprintf(out, "unmatched: %v\n", res.Unmatched)
		}
		if len(res.Ambiguous) > 0 {
			fmt.Fprintf(out, "ambiguous: %v\n", res.Ambiguous)
		}
		if res.Fallback {
			fmt.Fprintln(out, "too few headers matched, columns taken by position")
		}
		fmt.Fprintf(out, "columns: %v\nrows: %d\n", table.Columns, len(table.Rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
