package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/scward0/SaveHaven/internal/model"
)

func sampleTxns() []model.Transaction {
	return []model.Transaction{
		txn("4", 1200, "Paycheck", 4000, model.TypeIncome),
		txn("3", 80, "Entertainment", 3000, model.TypeExpense),
		txn("2", 50, "Food", 2000, model.TypeExpense),
		txn("1", 25, "Gift", 1000, model.TypeIncome),
	}
}

func TestApplyEmptyFilterIsIdentity(t *testing.T) {
	txns := sampleTxns()
	assert.Equal(t, txns, Apply(txns, Filter{}))
}

func TestApplyIdempotent(t *testing.T) {
	expense := model.TypeExpense
	from := int64(1500)
	f := Filter{Type: &expense, DateFrom: &from}

	txns := sampleTxns()
	once := Apply(txns, f)
	twice := Apply(once, f)
	assert.Equal(t, once, twice)
}

func TestApplyByType(t *testing.T) {
	income := model.TypeIncome
	got := Apply(sampleTxns(), Filter{Type: &income})

	assert.Len(t, got, 2)
	for _, x := range got {
		assert.Equal(t, model.TypeIncome, x.Type)
	}
}

func TestApplyByCategory(t *testing.T) {
	got := Apply(sampleTxns(), Filter{Category: "Food"})

	assert.Len(t, got, 1)
	assert.Equal(t, "2", got[0].Id)
}

func TestApplyDateRange(t *testing.T) {
	from := int64(2000)
	to := int64(3000)
	got := Apply(sampleTxns(), Filter{DateFrom: &from, DateTo: &to})

	// From is inclusive; To is widened by a day, so everything up to
	// 3000+24h passes. Txn "4" at 4000 still falls inside the widened
	// window here because the bound grows by 86,400,000 ms.
	assert.Len(t, got, 3)
}

func TestApplyDateToIncludesWholeDay(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	midnight := day.UnixMilli()
	lateEvening := day.Add(23 * time.Hour).UnixMilli()

	txns := []model.Transaction{txn("1", 10, "Food", lateEvening, model.TypeExpense)}

	got := Apply(txns, Filter{DateTo: &midnight})
	assert.Len(t, got, 1, "a dateTo of D's midnight must include a transaction at D 23:00")
}

func TestApplyCombinesWithAND(t *testing.T) {
	expense := model.TypeExpense
	got := Apply(sampleTxns(), Filter{Type: &expense, Category: "Gift"})
	assert.Empty(t, got, "Gift is an income category; AND of both constraints matches nothing")
}

func TestApplyPreservesOrder(t *testing.T) {
	expense := model.TypeExpense
	got := Apply(sampleTxns(), Filter{Type: &expense})

	assert.Equal(t, "3", got[0].Id)
	assert.Equal(t, "2", got[1].Id)
}

func TestApplyTotalsConsistency(t *testing.T) {
	expense := model.TypeExpense
	filtered := Apply(sampleTxns(), Filter{Type: &expense})

	var manual float64
	for _, x := range filtered {
		manual += x.Amount
	}
	assert.InDelta(t, manual, Totals(filtered).Expenses, 1e-9)
}

func TestCategoryOptions(t *testing.T) {
	income := model.TypeIncome
	expense := model.TypeExpense

	assert.Equal(t, model.IncomeCategories, CategoryOptions(&income))
	assert.Equal(t, model.ExpenseCategories, CategoryOptions(&expense))

	union := CategoryOptions(nil)
	assert.Len(t, union, len(model.IncomeCategories)+len(model.ExpenseCategories))
	seen := make(map[string]bool)
	for _, c := range union {
		assert.False(t, seen[c], "duplicate category %q in union", c)
		seen[c] = true
	}
}
