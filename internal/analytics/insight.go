package analytics

import (
	"fmt"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Insights narrates a trend, one insight per trend category in trend order.
// The prior-period amount is derived from the current amount and the change,
// it is never re-aggregated.
func Insights(trend domain.Trend, current domain.CategorySummary) []domain.Insight {
	insights := make([]domain.Insight, 0, trend.Len())
	for _, e := range trend.Entries() {
		insights = append(insights, categoryInsight(e.Key, current.Value(e.Key), e.Amount))
	}
	return insights
}

func categoryInsight(category string, amount, change decimal.Decimal) domain.Insight {
	switch {
	case change.IsZero():
		return domain.Insight{
			Category: category,
			Kind:     domain.InsightNoChange,
			Message:  fmt.Sprintf("No change in spending for %s.", category),
		}
	case amount.IsZero(), amount.Sub(change).IsZero():
		// nothing was spent in the prior period
		return domain.Insight{
			Category: category,
			Kind:     domain.InsightNewSpending,
			Message:  fmt.Sprintf("New spending on %s: $%s.", category, change.StringFixed(2)),
		}
	case change.IsPositive():
		pct := change.Div(amount.Sub(change)).Mul(hundred)
		return domain.Insight{
			Category: category,
			Kind:     domain.InsightIncrease,
			Percent:  &pct,
			Message:  fmt.Sprintf("You spent %s%% more on %s this month.", pct.StringFixed(2), category),
		}
	}

	base := amount.Add(change)
	if base.IsZero() {
		return domain.Insight{
			Category: category,
			Kind:     domain.InsightUndefined,
			Message:  fmt.Sprintf("Spending on %s is unchanged, cannot calculate percentage.", category),
		}
	}
	pct := change.Abs().Div(base).Mul(hundred)
	return domain.Insight{
		Category: category,
		Kind:     domain.InsightDecrease,
		Percent:  &pct,
		Message:  fmt.Sprintf("You spent %s%% less on %s this month.", pct.StringFixed(2), category),
	}
}

// OverallInsight compares total spending of two periods. It reports false when
// the previous total is not positive.
func OverallInsight(current, previous decimal.Decimal) (domain.Insight, bool) {
	if !previous.IsPositive() {
		return domain.Insight{}, false
	}
	pct := current.Sub(previous).Div(previous).Mul(hundred)
	direction := "less"
	if pct.IsPositive() {
		direction = "more"
	}
	abs := pct.Abs()
	return domain.Insight{
		Kind:    domain.InsightOverall,
		Percent: &pct,
		Message: fmt.Sprintf("You spent %s%% %s this month compared to last month.", abs.StringFixed(2), direction),
	}, true
}
