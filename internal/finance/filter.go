package finance

import "github.com/scward0/SaveHaven/internal/model"

// dayMillis widens an inclusive "to" bound so a calendar-day selection covers
// transactions timestamped anywhere within that day.
const dayMillis = 24 * 60 * 60 * 1000

// Filter is a composable predicate over a transaction list. Nil/empty fields
// mean "no constraint on this dimension"; set fields AND together.
type Filter struct {
	Type     *model.TransactionType
	Category string
	DateFrom *int64
	DateTo   *int64
}

// Apply retains every transaction satisfying all set constraints, preserving
// input order. Applying the same filter twice is a no-op on the second pass.
func Apply(txns []model.Transaction, f Filter) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if f.Type != nil && t.Type != *f.Type {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.DateFrom != nil && t.Date < *f.DateFrom {
			continue
		}
		if f.DateTo != nil && t.Date > *f.DateTo+dayMillis {
			continue
		}
		out = append(out, t)
	}
	return out
}

// CategoryOptions returns the categories a filter UI should offer for the
// given type selection: the matching registry list, or the deduplicated union
// of both lists when no type is selected.
func CategoryOptions(t *model.TransactionType) []string {
	if t != nil {
		return model.CategoriesFor(*t)
	}
	seen := make(map[string]bool)
	var out []string
	for _, list := range [][]string{model.IncomeCategories, model.ExpenseCategories} {
		for _, c := range list {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}
