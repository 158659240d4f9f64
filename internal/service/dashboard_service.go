package service

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/scward0/SaveHaven/internal/finance"
	"github.com/scward0/SaveHaven/internal/model"
)

// usd formats amounts the way the dashboard displays them (US locale, two
// decimals, thousands separators).
var usd = message.NewPrinter(language.AmericanEnglish)

func formatUSD(amount float64) string {
	return usd.Sprintf("$%.2f", amount)
}

// Dashboard is the home-screen payload: headline totals, savings status, and
// the five most recent transactions.
type Dashboard struct {
	Summary          finance.Summary       `json:"summary"`
	IncomeDisplay    string                `json:"incomeDisplay"`
	ExpensesDisplay  string                `json:"expensesDisplay"`
	NetDisplay       string                `json:"netDisplay"`
	Status           finance.SavingsStatus `json:"status"`
	StatusMessage    string                `json:"statusMessage"`
	Recent           []model.Transaction   `json:"recent"`
	TransactionCount int                   `json:"transactionCount"`
}

// OverviewSegment is one pie-chart slice: a category, its total, its share of
// the whole, and the registry color for the segment.
type OverviewSegment struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Percent  float64 `json:"percent"`
	Color    string  `json:"color"`
}

// Overview is the per-type breakdown backing the income and expense charts.
type Overview struct {
	Type         model.TransactionType `json:"type"`
	Total        float64               `json:"total"`
	TotalDisplay string                `json:"totalDisplay"`
	Segments     []OverviewSegment     `json:"segments"`
	Transactions []model.Transaction   `json:"transactions"`
}

// Dashboard computes the home-screen view over the caller's full transaction
// set. Empty history yields zero totals and a breakeven status.
func (s *TransactionService) Dashboard(ctx context.Context) (*Dashboard, error) {
	txns, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := finance.Totals(txns)
	status := finance.Status(summary.Net)

	recent := txns
	if len(recent) > 5 {
		recent = recent[:5]
	}

	return &Dashboard{
		Summary:          summary,
		IncomeDisplay:    formatUSD(summary.Income),
		ExpensesDisplay:  formatUSD(summary.Expenses),
		NetDisplay:       formatUSD(summary.Net),
		Status:           status,
		StatusMessage:    finance.StatusMessage(status),
		Recent:           recent,
		TransactionCount: len(txns),
	}, nil
}

// Overview computes the category breakdown for one transaction type, with
// percentage shares and chart colors assigned by registry position.
func (s *TransactionService) Overview(ctx context.Context, txType model.TransactionType) (*Overview, error) {
	txns, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	scoped := finance.Apply(txns, finance.Filter{Type: &txType})
	breakdown := finance.CategoryBreakdown(scoped)

	var total float64
	for _, b := range breakdown {
		total += b.Total
	}

	segments := make([]OverviewSegment, 0, len(breakdown))
	for _, b := range breakdown {
		var pct float64
		if total > 0 {
			pct = b.Total / total * 100
		}
		segments = append(segments, OverviewSegment{
			Category: b.Category,
			Total:    b.Total,
			Percent:  pct,
			Color:    model.CategoryColor(txType, b.Category),
		})
	}

	return &Overview{
		Type:         txType,
		Total:        total,
		TotalDisplay: formatUSD(total),
		Segments:     segments,
		Transactions: scoped,
	}, nil
}
