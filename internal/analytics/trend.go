package analytics

import "github.com/dafibh/pennywise/pennywise-backend/internal/domain"

// Trends returns current minus previous for every category of current, in
// current's order. Categories found only in previous have no entry: a category
// that disappears this period is not reported as a negative change.
func Trends(current, previous domain.CategorySummary) domain.Trend {
	var b domain.AmountsBuilder[string]
	for _, e := range current.Entries() {
		b.Set(e.Key, e.Amount.Sub(previous.Value(e.Key)))
	}
	return b.Build()
}
