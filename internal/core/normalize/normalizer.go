package normalize

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rl1809/grocery-stock/internal/core/domain"
)

const (
	DefaultMinMatches = 3
	maxColumns        = 4
)

var ErrNoHeader = errors.New("sheet has no header row")

type Normalizer struct {
	Rules      []Rule
	MinMatches int
	// Legacy names matched columns positionally by match count instead of
	// by the field each column matched.
	Legacy bool
}

func New() *Normalizer {
	return &Normalizer{Rules: DefaultRules, MinMatches: DefaultMinMatches}
}

type column struct {
	index int
	field domain.Field
}

// Normalize turns raw sheet rows, header first, into an inventory table.
func (n *Normalizer) Normalize(raw [][]string) (domain.Table, Resolution, error) {
	if len(raw) == 0 || !hasText(raw[0]) {
		return domain.Table{}, Resolution{}, ErrNoHeader
	}

	headers := raw[0]
	res := Resolve(headers, n.rules())
	plan := n.plan(headers, &res)

	table := domain.Table{
		Columns: make([]domain.Field, len(plan)),
		Rows:    make([]domain.Row, 0, len(raw)-1),
	}
	for i, c := range plan {
		table.Columns[i] = c.field
	}

	for _, cells := range raw[1:] {
		row, empty := buildRow(cells, plan)
		if empty {
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	return table, res, nil
}

func (n *Normalizer) rules() []Rule {
	if len(n.Rules) == 0 {
		return DefaultRules
	}
	return n.Rules
}

func (n *Normalizer) minMatches() int {
	if n.MinMatches <= 0 {
		return DefaultMinMatches
	}
	return n.MinMatches
}

func (n *Normalizer) plan(headers []string, res *Resolution) []column {
	if len(res.Matches) >= n.minMatches() {
		names := legacyNames(len(res.Matches))
		plan := make([]column, len(res.Matches))
		for i, m := range res.Matches {
			field := m.Field
			if n.Legacy && names != nil {
				field = names[i]
			}
			plan[i] = column{index: m.Column, field: field}
		}
		return plan
	}

	res.Fallback = true
	count := min(maxColumns, len(headers))
	plan := make([]column, count)
	for i := 0; i < count; i++ {
		plan[i] = column{index: i, field: domain.Fields[i]}
	}
	return plan
}

func legacyNames(count int) []domain.Field {
	switch count {
	case 4:
		return domain.Fields
	case 3:
		return []domain.Field{domain.FieldProduct, domain.FieldPrice, domain.FieldStockQty}
	default:
		return nil
	}
}

func buildRow(cells []string, plan []column) (domain.Row, bool) {
	var row domain.Row
	empty := true
	for _, c := range plan {
		value := ""
		if c.index < len(cells) {
			value = strings.TrimSpace(cells[c.index])
		}
		if value == "" {
			continue
		}
		empty = false

		switch c.field {
		case domain.FieldProduct:
			row.Product = value
		case domain.FieldPrice:
			row.Price = parseDecimal(value)
		case domain.FieldUnit:
			row.Unit = value
		case domain.FieldStockQty:
			qty := parseDecimal(value)
			if qty.Valid && qty.Decimal.IsNegative() {
				qty = decimal.NullDecimal{}
			}
			row.StockQty = qty
		}
	}
	return row, empty
}

func parseDecimal(value string) decimal.NullDecimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func hasText(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return true
		}
	}
	return false
}
