package normalize

import (
	"strings"

	"github.com/rl1809/grocery-stock/internal/core/domain"
)

// Rule maps a logical field to the header fragments that identify it.
// Candidates are compared against folded headers, so they must be lower-case ASCII.
type Rule struct {
	Field      domain.Field
	Candidates []string
}

// DefaultRules is ordered by field priority.
var DefaultRules = []Rule{
	{Field: domain.FieldProduct, Candidates: []string{"produto", "product", "item", "nome", "descricao"}},
	{Field: domain.FieldPrice, Candidates: []string{"preco", "price", "valor"}},
	{Field: domain.FieldUnit, Candidates: []string{"medida", "unidade", "unit", "un."}},
	{Field: domain.FieldStockQty, Candidates: []string{"estoque", "stock", "quantidade", "qtd", "qty"}},
}

type Match struct {
	Field  domain.Field
	Column int
	Header string
}

// Resolution is the outcome of matching headers against a rule table.
type Resolution struct {
	Matches   []Match
	Unmatched []domain.Field
	// Ambiguous fields had candidates that only hit columns already claimed
	// by a higher-priority field.
	Ambiguous []domain.Field
	// Fallback is set by Normalize when too few fields matched and columns
	// were taken by position instead.
	Fallback bool
}

func (r Resolution) Matched(field domain.Field) (Match, bool) {
	for _, m := range r.Matches {
		if m.Field == field {
			return m, true
		}
	}
	return Match{}, false
}

// Resolve claims at most one column per field, scanning headers left to right
// for each rule in order. A claimed column is never offered to a later field.
func Resolve(headers []string, rules []Rule) Resolution {
	folded := make([]string, len(headers))
	for i, h := range headers {
		folded[i] = domain.Fold(strings.TrimSpace(h))
	}

	var res Resolution
	claimed := make(map[int]bool, len(headers))
	for _, rule := range rules {
		col, blocked := -1, false
		for i, header := range folded {
			if !containsAny(header, rule.Candidates) {
				continue
			}
			if claimed[i] {
				blocked = true
				continue
			}
			col = i
			break
		}

		switch {
		case col >= 0:
			claimed[col] = true
			res.Matches = append(res.Matches, Match{Field: rule.Field, Column: col, Header: headers[col]})
		case blocked:
			res.Ambiguous = append(res.Ambiguous, rule.Field)
		default:
			res.Unmatched = append(res.Unmatched, rule.Field)
		}
	}
	return res
}

func containsAny(header string, candidates []string) bool {
	if header == "" {
		return false
	}
	for _, c := range candidates {
		if c != "" && strings.Contains(header, c) {
			return true
		}
	}
	return false
}
