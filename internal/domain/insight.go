package domain

import "github.com/shopspring/decimal"

type InsightKind string

const (
	InsightNoChange    InsightKind = "no_change"
	InsightNewSpending InsightKind = "new_spending"
	InsightIncrease    InsightKind = "increase"
	InsightDecrease    InsightKind = "decrease"
	// InsightUndefined marks a change whose percentage has a zero base
	InsightUndefined InsightKind = "undefined"
	InsightOverall   InsightKind = "overall"
)

// Insight is a human readable statement about a spending change.
// Percent is set only for increase, decrease and overall insights.
type Insight struct {
	Category string           `json:"category,omitempty"`
	Kind     InsightKind      `json:"kind"`
	Percent  *decimal.Decimal `json:"percent,omitempty"`
	Message  string           `json:"message"`
}

func (i Insight) String() string {
	return i.Message
}

// TrendReport compares the spending of two periods
type TrendReport struct {
	Period         string          `json:"period"`
	PreviousPeriod string          `json:"previousPeriod"`
	Current        CategorySummary `json:"-"`
	Previous       CategorySummary `json:"-"`
	Trend          Trend           `json:"-"`
	Insights       []Insight       `json:"insights"`
	Overall        *Insight        `json:"overall,omitempty"`
}
