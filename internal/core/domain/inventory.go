package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

type Field int

const (
	FieldProduct Field = iota
	FieldPrice
	FieldUnit
	FieldStockQty
)

// Fields lists the logical fields in priority order.
var Fields = []Field{FieldProduct, FieldPrice, FieldUnit, FieldStockQty}

func (f Field) String() string {
	switch f {
	case FieldProduct:
		return "product"
	case FieldPrice:
		return "price"
	case FieldUnit:
		return "unit"
	case FieldStockQty:
		return "stock_qty"
	default:
		return "unknown"
	}
}

func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Field) UnmarshalText(text []byte) error {
	for _, candidate := range Fields {
		if candidate.String() == string(text) {
			*f = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown field %q", text)
}

// Header is the column title written to the workbook.
func (f Field) Header() string {
	switch f {
	case FieldProduct:
		return "Produto"
	case FieldPrice:
		return "Preco"
	case FieldUnit:
		return "Unidade"
	case FieldStockQty:
		return "Estoque"
	default:
		return ""
	}
}

type Row struct {
	Product  string              `json:"product"`
	Price    decimal.NullDecimal `json:"price"`
	Unit     string              `json:"unit,omitempty"`
	StockQty decimal.NullDecimal `json:"stock_qty"`
}

func (r Row) IsEmpty() bool {
	return r.Product == "" && !r.Price.Valid && r.Unit == "" && !r.StockQty.Valid
}

type Table struct {
	Columns []Field `json:"columns"`
	Rows    []Row   `json:"rows"`
}

func (t Table) Has(field Field) bool {
	for _, f := range t.Columns {
		if f == field {
			return true
		}
	}
	return false
}

func (t Table) Clone() Table {
	out := Table{
		Columns: make([]Field, len(t.Columns)),
		Rows:    make([]Row, len(t.Rows)),
	}
	copy(out.Columns, t.Columns)
	copy(out.Rows, t.Rows)
	return out
}

// Find returns the index of the first row whose product equals name exactly.
func (t Table) Find(name string) (int, bool) {
	for i, row := range t.Rows {
		if row.Product == name {
			return i, true
		}
	}
	return -1, false
}

// Filter keeps rows whose product contains query, ignoring case and accents.
func (t Table) Filter(query string) Table {
	query = Fold(strings.TrimSpace(query))
	if query == "" {
		return t.Clone()
	}
	out := Table{Columns: append([]Field(nil), t.Columns...), Rows: []Row{}}
	for _, row := range t.Rows {
		if strings.Contains(Fold(row.Product), query) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Products lists non-empty product names matching query, in table order.
func (t Table) Products(query string) []string {
	query = Fold(strings.TrimSpace(query))
	out := []string{}
	for _, row := range t.Rows {
		if row.Product == "" {
			continue
		}
		if query != "" && !strings.Contains(Fold(row.Product), query) {
			continue
		}
		out = append(out, row.Product)
	}
	return out
}

// Lowest returns up to n rows with known stock, smallest first.
func (t Table) Lowest(n int) []Row {
	rows := make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		if row.StockQty.Valid {
			rows = append(rows, row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].StockQty.Decimal.LessThan(rows[j].StockQty.Decimal)
	})
	if n >= 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
