package analytics

import (
	"fmt"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/shopspring/decimal"
)

var warningRatio = decimal.RequireFromString("0.9")

// SetBudget returns budgets with category's limit replaced. The input is not modified.
func SetBudget(budgets domain.Budget, category string, limit decimal.Decimal) domain.Budget {
	return budgets.With(category, limit)
}

// Usage returns the expense total of every budgeted category, in budget order.
// Income never counts against a budget.
func Usage(budgets domain.Budget, transactions []domain.Transaction) domain.BudgetUsage {
	spent := Summarize(transactions, domain.TransactionTypeExpense)

	var b domain.AmountsBuilder[string]
	for _, category := range budgets.Keys() {
		b.Set(category, spent.Value(category))
	}
	return b.Build()
}

// Alerts classifies every category of usage against its limit:
// above the limit is exceeded, above 90% of it is a warning, anything else is
// silent. A category without a limit is measured against zero, so any
// recorded usage exceeds it.
func Alerts(budgets domain.Budget, usage domain.BudgetUsage) []domain.BudgetAlert {
	var alerts []domain.BudgetAlert
	for _, e := range usage.Entries() {
		used := e.Amount
		limit := budgets.Value(e.Key)

		switch {
		case used.GreaterThan(limit):
			alerts = append(alerts, domain.BudgetAlert{
				Category: e.Key,
				Level:    domain.AlertLevelExceeded,
				Used:     used,
				Limit:    limit,
				Message: fmt.Sprintf("Budget exceeded for %s. Used: $%s, Budget: $%s",
					e.Key, used.StringFixed(2), limit.StringFixed(2)),
			})
		case used.GreaterThan(warningRatio.Mul(limit)):
			alerts = append(alerts, domain.BudgetAlert{
				Category: e.Key,
				Level:    domain.AlertLevelWarning,
				Used:     used,
				Limit:    limit,
				Message: fmt.Sprintf("Warning: You are close to exceeding the budget for %s. Used: $%s, Budget: $%s",
					e.Key, used.StringFixed(2), limit.StringFixed(2)),
			})
		}
	}
	return alerts
}

// Status reports spent and remaining amounts for every budgeted category
func Status(budgets domain.Budget, transactions []domain.Transaction) []domain.BudgetStatus {
	usage := Usage(budgets, transactions)

	statuses := make([]domain.BudgetStatus, 0, budgets.Len())
	for _, e := range budgets.Entries() {
		spent := usage.Value(e.Key)
		remaining := e.Amount.Sub(spent)
		state := domain.BudgetStateUnder
		if remaining.IsNegative() {
			state = domain.BudgetStateOver
		}
		statuses = append(statuses, domain.BudgetStatus{
			Category:  e.Key,
			Limit:     e.Amount,
			Spent:     spent,
			Remaining: remaining,
			Status:    state,
		})
	}
	return statuses
}
