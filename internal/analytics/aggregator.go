// Package analytics turns transactions, budgets and goals into summaries,
// trends, insights and budget alerts. Every function is pure: inputs are never
// modified and results never alias their arguments.
package analytics

import (
	"fmt"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Summarize sums transaction amounts per category for transactions matching kind.
// Categories appear in order of their first matching transaction.
func Summarize(transactions []domain.Transaction, kind domain.TransactionType) domain.CategorySummary {
	var b domain.AmountsBuilder[string]
	for _, tx := range transactions {
		if tx.Matches(kind) {
			b.Add(tx.Category, tx.Amount)
		}
	}
	return b.Build()
}

// ByMonth sums transaction amounts per calendar month (1-12) for transactions
// matching kind. Months of different years share a key. Any unparseable date
// aborts the whole aggregation with domain.ErrMalformedDate.
func ByMonth(transactions []domain.Transaction, kind domain.TransactionType) (domain.MonthlySummary, error) {
	var b domain.AmountsBuilder[int]
	for _, tx := range transactions {
		d, err := tx.ParsedDate()
		if err != nil {
			return domain.MonthlySummary{}, err
		}
		if tx.Matches(kind) {
			b.Add(int(d.Month()), tx.Amount)
		}
	}
	return b.Build(), nil
}

// ByPeriod is ByMonth keyed by "YYYY-MM", keeping years apart
func ByPeriod(transactions []domain.Transaction, kind domain.TransactionType) (domain.PeriodSummary, error) {
	var b domain.AmountsBuilder[string]
	for _, tx := range transactions {
		d, err := tx.ParsedDate()
		if err != nil {
			return domain.PeriodSummary{}, err
		}
		if tx.Matches(kind) {
			b.Add(PeriodKey(d.Year(), int(d.Month())), tx.Amount)
		}
	}
	return b.Build(), nil
}

// InPeriod returns the transactions dated in the given calendar month, in their original order
func InPeriod(transactions []domain.Transaction, year, month int) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, tx := range transactions {
		d, err := tx.ParsedDate()
		if err != nil {
			return nil, err
		}
		if d.Year() == year && int(d.Month()) == month {
			out = append(out, tx)
		}
	}
	return out, nil
}

// PeriodKey formats a year and month as "YYYY-MM"
func PeriodKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// OverallSpending returns the total of all expense amounts
func OverallSpending(transactions []domain.Transaction) decimal.Decimal {
	return Summarize(transactions, domain.TransactionTypeExpense).Total()
}

// ComputeTotals returns income, expense and net totals
func ComputeTotals(transactions []domain.Transaction) domain.Totals {
	totals := domain.Totals{Income: decimal.Zero, Expenses: decimal.Zero}
	for _, tx := range transactions {
		switch tx.Type {
		case domain.TransactionTypeIncome:
			totals.Income = totals.Income.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			totals.Expenses = totals.Expenses.Add(tx.Amount)
		}
	}
	totals.Net = totals.Income.Sub(totals.Expenses)
	return totals
}
