package postgres

import (
	"context"
	"fmt"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// GetAll loads the budget mapping ordered by position
func (r *BudgetRepository) GetAll() (domain.Budget, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT category, amount FROM budgets ORDER BY position`)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var b domain.AmountsBuilder[string]
	for rows.Next() {
		var category string
		var amount pgtype.Numeric
		if err := rows.Scan(&category, &amount); err != nil {
			return domain.Budget{}, fmt.Errorf("scan budget: %w", err)
		}
		b.Set(category, pgNumericToDecimal(amount))
	}
	if err := rows.Err(); err != nil {
		return domain.Budget{}, err
	}
	return b.Build(), nil
}

// Save replaces the stored mapping
func (r *BudgetRepository) Save(budgets domain.Budget) error {
	ctx := context.Background()
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM budgets`)
	for i, e := range budgets.Entries() {
		amount, err := decimalToPgNumeric(e.Amount)
		if err != nil {
			return err
		}
		batch.Queue(`INSERT INTO budgets (category, amount, position) VALUES ($1, $2, $3)`, e.Key, amount, i)
	}

	return pgx.BeginFunc(ctx, r.pool, func(dbTx pgx.Tx) error {
		if err := dbTx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("save budgets: %w", err)
		}
		return nil
	})
}
