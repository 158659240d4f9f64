package model

// Fixed category sets. Changing these is a code change, not a data operation;
// chart colors are assigned by position so the sets and palettes move together.
var (
	ExpenseCategories = []string{
		"Food",
		"Entertainment",
		"Rent",
		"Car",
		"Miscellaneous",
	}

	IncomeCategories = []string{
		"Paycheck",
		"Gift",
		"Loan",
	}
)

// Red scheme for expenses, green scheme for income.
var (
	expenseColors = []string{
		"#F44336",
		"#E91E63",
		"#9C27B0",
		"#FF5722",
		"#795548",
	}

	incomeColors = []string{
		"#4CAF50",
		"#8BC34A",
		"#CDDC39",
	}
)

// CategoriesFor returns the allowed category list for a transaction type.
func CategoriesFor(t TransactionType) []string {
	if t == TypeIncome {
		return IncomeCategories
	}
	return ExpenseCategories
}

// ValidCategory reports whether category belongs to the set for type t.
func ValidCategory(t TransactionType, category string) bool {
	for _, c := range CategoriesFor(t) {
		if c == category {
			return true
		}
	}
	return false
}

// CategoryColor returns the fixed display color for a category, keyed by its
// position in the registry. Unknown categories get a neutral grey so chart
// rendering never fails on legacy data.
func CategoryColor(t TransactionType, category string) string {
	colors := expenseColors
	if t == TypeIncome {
		colors = incomeColors
	}
	for i, c := range CategoriesFor(t) {
		if c == category && i < len(colors) {
			return colors[i]
		}
	}
	return "#9E9E9E"
}
