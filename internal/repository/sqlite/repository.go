package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Amounts are stored as decimal text so no precision is lost

// TransactionRepository implements domain.TransactionRepository using SQLite
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Append inserts one transaction at the end of the log
func (r *TransactionRepository) Append(tx domain.Transaction) error {
	ctx := context.Background()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (amount, category, date, type) VALUES (?, ?, ?, ?)`,
		tx.Amount.String(), tx.Category, tx.Date, string(tx.Type))
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// List returns every transaction in insertion order
func (r *TransactionRepository) List() ([]domain.Transaction, error) {
	ctx := context.Background()
	rows, err := r.db.QueryContext(ctx, `SELECT amount, category, date, type FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txs := []domain.Transaction{}
	for rows.Next() {
		var amount, txType string
		var tx domain.Transaction
		if err := rows.Scan(&amount, &tx.Category, &tx.Date, &txType); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if tx.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse stored amount %q: %w", amount, err)
		}
		tx.Type = domain.TransactionType(txType)
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// ReplaceAll swaps the whole log atomically
func (r *TransactionRepository) ReplaceAll(txs []domain.Transaction) error {
	ctx := context.Background()
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	stmt, err := dbTx.PrepareContext(ctx, `INSERT INTO transactions (amount, category, date, type) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		if _, err := stmt.ExecContext(ctx, tx.Amount.String(), tx.Category, tx.Date, string(tx.Type)); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}
	return dbTx.Commit()
}

// BudgetRepository implements domain.BudgetRepository using SQLite.
// The position column keeps the mapping's key order.
type BudgetRepository struct {
	db *sql.DB
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// GetAll loads the budget mapping in its stored order
func (r *BudgetRepository) GetAll() (domain.Budget, error) {
	ctx := context.Background()
	rows, err := r.db.QueryContext(ctx, `SELECT category, amount FROM budgets ORDER BY position`)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var b domain.AmountsBuilder[string]
	for rows.Next() {
		var category, amount string
		if err := rows.Scan(&category, &amount); err != nil {
			return domain.Budget{}, fmt.Errorf("scan budget: %w", err)
		}
		limit, err := decimal.NewFromString(amount)
		if err != nil {
			return domain.Budget{}, fmt.Errorf("parse stored limit %q: %w", amount, err)
		}
		b.Set(category, limit)
	}
	if err := rows.Err(); err != nil {
		return domain.Budget{}, err
	}
	return b.Build(), nil
}

// Save replaces the stored mapping
func (r *BudgetRepository) Save(budgets domain.Budget) error {
	ctx := context.Background()
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM budgets`); err != nil {
		return fmt.Errorf("clear budgets: %w", err)
	}
	for i, e := range budgets.Entries() {
		if _, err := dbTx.ExecContext(ctx,
			`INSERT INTO budgets (category, amount, position) VALUES (?, ?, ?)`,
			e.Key, e.Amount.String(), i); err != nil {
			return fmt.Errorf("insert budget %s: %w", e.Key, err)
		}
	}
	return dbTx.Commit()
}

// GoalRepository implements domain.GoalRepository using SQLite
type GoalRepository struct {
	db *sql.DB
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// Append stores a goal
func (r *GoalRepository) Append(goal domain.SavingsGoal) error {
	ctx := context.Background()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO savings_goals (id, target, monthly_savings, months_remaining, created_at) VALUES (?, ?, ?, ?, ?)`,
		goal.ID.String(), goal.Target.String(), goal.MonthlySavings.String(), goal.MonthsRemaining,
		goal.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert savings goal: %w", err)
	}
	return nil
}

// List returns goals in the order they were added
func (r *GoalRepository) List() ([]domain.SavingsGoal, error) {
	ctx := context.Background()
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, target, monthly_savings, months_remaining, created_at FROM savings_goals ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	defer rows.Close()

	goals := []domain.SavingsGoal{}
	for rows.Next() {
		var id, target, monthly, createdAt string
		var goal domain.SavingsGoal
		if err := rows.Scan(&id, &target, &monthly, &goal.MonthsRemaining, &createdAt); err != nil {
			return nil, fmt.Errorf("scan savings goal: %w", err)
		}
		if goal.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse goal id: %w", err)
		}
		if goal.Target, err = decimal.NewFromString(target); err != nil {
			return nil, fmt.Errorf("parse goal target: %w", err)
		}
		if goal.MonthlySavings, err = decimal.NewFromString(monthly); err != nil {
			return nil, fmt.Errorf("parse goal monthly savings: %w", err)
		}
		if goal.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse goal created_at: %w", err)
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}
