package postgres

import (
	"context"
	"fmt"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GoalRepository implements domain.GoalRepository using PostgreSQL
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

// Append stores a goal. Reusing an ID is rejected.
func (r *GoalRepository) Append(goal domain.SavingsGoal) error {
	ctx := context.Background()
	target, err := decimalToPgNumeric(goal.Target)
	if err != nil {
		return err
	}
	monthly, err := decimalToPgNumeric(goal.MonthlySavings)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO savings_goals (id, target, monthly_savings, months_remaining, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		goal.ID, target, monthly, goal.MonthsRemaining, goal.CreatedAt)
	if err != nil {
		if isPgUniqueViolation(err) {
			return fmt.Errorf("%w: goal %s already exists", domain.ErrInvalidInput, goal.ID)
		}
		return fmt.Errorf("insert savings goal: %w", err)
	}
	return nil
}

// List returns goals oldest first
func (r *GoalRepository) List() ([]domain.SavingsGoal, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT id, target, monthly_savings, months_remaining, created_at
		 FROM savings_goals ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}

	goals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SavingsGoal, error) {
		var goal domain.SavingsGoal
		var target, monthly pgtype.Numeric
		if err := row.Scan(&goal.ID, &target, &monthly, &goal.MonthsRemaining, &goal.CreatedAt); err != nil {
			return domain.SavingsGoal{}, err
		}
		goal.Target = pgNumericToDecimal(target)
		goal.MonthlySavings = pgNumericToDecimal(monthly)
		return goal, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan savings goals: %w", err)
	}
	return goals, nil
}
