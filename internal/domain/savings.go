package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavingsGoal is a fixed monthly savings schedule towards a target amount
type SavingsGoal struct {
	ID              uuid.UUID       `json:"id"`
	Target          decimal.Decimal `json:"target"`
	MonthlySavings  decimal.Decimal `json:"monthlySavings"`
	MonthsRemaining int             `json:"monthsRemaining"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// GoalRepository stores goals append-only
type GoalRepository interface {
	Append(goal SavingsGoal) error
	List() ([]SavingsGoal, error)
}
