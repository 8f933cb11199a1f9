package postgres

import (
	"context"
	"fmt"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Append inserts one transaction at the end of the log
func (r *TransactionRepository) Append(tx domain.Transaction) error {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(tx.Amount)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO transactions (amount, category, date, type) VALUES ($1, $2, $3, $4)`,
		amount, tx.Category, tx.Date, string(tx.Type))
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// List returns every transaction in insertion order
func (r *TransactionRepository) List() ([]domain.Transaction, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT amount, category, date, type FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	txs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transaction, error) {
		var amount pgtype.Numeric
		var txType string
		var tx domain.Transaction
		if err := row.Scan(&amount, &tx.Category, &tx.Date, &txType); err != nil {
			return domain.Transaction{}, err
		}
		tx.Amount = pgNumericToDecimal(amount)
		tx.Type = domain.TransactionType(txType)
		return tx, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan transactions: %w", err)
	}
	return txs, nil
}

// ReplaceAll swaps the whole log inside one database transaction
func (r *TransactionRepository) ReplaceAll(txs []domain.Transaction) error {
	ctx := context.Background()
	rows := make([][]any, len(txs))
	for i, tx := range txs {
		amount, err := decimalToPgNumeric(tx.Amount)
		if err != nil {
			return err
		}
		rows[i] = []any{amount, tx.Category, tx.Date, string(tx.Type)}
	}

	return pgx.BeginFunc(ctx, r.pool, func(dbTx pgx.Tx) error {
		if _, err := dbTx.Exec(ctx, `DELETE FROM transactions`); err != nil {
			return fmt.Errorf("clear transactions: %w", err)
		}
		_, err := dbTx.CopyFrom(ctx,
			pgx.Identifier{"transactions"},
			[]string{"amount", "category", "date", "type"},
			pgx.CopyFromRows(rows))
		if err != nil {
			return fmt.Errorf("copy transactions: %w", err)
		}
		return nil
	})
}
