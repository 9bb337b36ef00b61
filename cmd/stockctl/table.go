package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/rl1809/grocery-stock/internal/core/domain"
)

func printRows(w io.Writer, columns []domain.Field, rows []domain.Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	headers := make([]string, len(columns))
	for i, f := range columns {
		headers[i] = f.Header()
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, f := range columns {
			cells[i] = cell(row, f)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func cell(row domain.Row, f domain.Field) string {
	switch f {
	case domain.FieldProduct:
		return row.Product
	case domain.FieldPrice:
		return formatDecimal(row.Price, 2)
	case domain.FieldUnit:
		return row.Unit
	case domain.FieldStockQty:
		return formatDecimal(row.StockQty, -1)
	}
	return ""
}

// formatDecimal renders absent values as "-". places < 0 keeps the value as is.
func formatDecimal(d decimal.NullDecimal, places int32) string {
	if !d.Valid {
		return "-"
	}
	if places < 0 {
		return d.Decimal.String()
	}
	return d.Decimal.StringFixed(places)
}
