package domain

import "github.com/shopspring/decimal"

type AlertLevel string

const (
	AlertLevelWarning  AlertLevel = "warning"
	AlertLevelExceeded AlertLevel = "exceeded"
)

// BudgetAlert reports a category whose usage is close to or above its limit
type BudgetAlert struct {
	Category string          `json:"category"`
	Level    AlertLevel      `json:"level"`
	Used     decimal.Decimal `json:"used"`
	Limit    decimal.Decimal `json:"limit"`
	Message  string          `json:"message"`
}

func (a BudgetAlert) String() string {
	return a.Message
}

type BudgetState string

const (
	BudgetStateUnder BudgetState = "under_budget"
	BudgetStateOver  BudgetState = "over_budget"
)

// BudgetStatus is the remaining headroom of one budgeted category
type BudgetStatus struct {
	Category  string          `json:"category"`
	Limit     decimal.Decimal `json:"limit"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    BudgetState     `json:"status"`
}

// BudgetRepository persists the whole budget mapping, keeping key order
type BudgetRepository interface {
	GetAll() (Budget, error)
	Save(budgets Budget) error
}
