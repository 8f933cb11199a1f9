package analytics

import (
	"fmt"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// SetSavingsGoal returns a new list with a goal appended that saves target
// over months equal instalments. goals itself is left untouched.
// It fails with domain.ErrInvalidDuration when months is not positive,
// whatever the target.
func SetSavingsGoal(goals []domain.SavingsGoal, target decimal.Decimal, months int) ([]domain.SavingsGoal, error) {
	if months <= 0 {
		return nil, domain.ErrInvalidDuration
	}

	next := make([]domain.SavingsGoal, len(goals), len(goals)+1)
	copy(next, goals)
	next = append(next, domain.SavingsGoal{
		Target:          target,
		MonthlySavings:  target.Div(decimal.NewFromInt(int64(months))),
		MonthsRemaining: months,
	})
	return next, nil
}

// RenderGoal formats a goal for display
func RenderGoal(goal domain.SavingsGoal) string {
	return fmt.Sprintf("Savings Goal Details:\n"+
		" - Target Amount: $%s\n"+
		" - Monthly Savings Needed: $%s\n"+
		" - Months Remaining: %d",
		goal.Target.StringFixed(2), goal.MonthlySavings.StringFixed(2), goal.MonthsRemaining)
}
