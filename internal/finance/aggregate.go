// Package finance holds the pure aggregation and filtering logic that turns a
// flat transaction list into dashboard numbers and filtered views. Nothing in
// here does I/O or holds state; every function is safe to call from any
// goroutine.
package finance

import "github.com/scward0/SaveHaven/internal/model"

// Summary is the dashboard headline: total income, total expenses, and net.
type Summary struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// SavingsStatus classifies a net figure for display.
type SavingsStatus string

const (
	StatusPositive  SavingsStatus = "positive"
	StatusBreakeven SavingsStatus = "breakeven"
	StatusNegative  SavingsStatus = "negative"
)

// Totals sums the list by type. Empty input yields an all-zero summary.
func Totals(txns []model.Transaction) Summary {
	var s Summary
	for _, t := range txns {
		switch t.Type {
		case model.TypeIncome:
			s.Income += t.Amount
		case model.TypeExpense:
			s.Expenses += t.Amount
		}
	}
	s.Net = s.Income - s.Expenses
	return s
}

// CategoryTotal is one slice of the category breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// CategoryBreakdown groups the input by category and sums amounts within each
// group. Output order is first-occurrence order of each category in the input,
// which keeps chart segments stable for a date-sorted list.
func CategoryBreakdown(txns []model.Transaction) []CategoryTotal {
	index := make(map[string]int, len(txns))
	var out []CategoryTotal
	for _, t := range txns {
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryTotal{Category: t.Category})
		}
		out[i].Total += t.Amount
	}
	return out
}

// Status classifies net savings.
func Status(net float64) SavingsStatus {
	switch {
	case net > 0:
		return StatusPositive
	case net < 0:
		return StatusNegative
	default:
		return StatusBreakeven
	}
}

// StatusMessage maps a savings status to the user-facing encouragement line.
func StatusMessage(s SavingsStatus) string {
	switch s {
	case StatusPositive:
		return "Great job saving!"
	case StatusNegative:
		return "Consider reducing expenses"
	default:
		return "Breaking even"
	}
}
