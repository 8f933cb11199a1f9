package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericConversion(t *testing.T) {
	for _, s := range []string{"0", "12.5", "0.0001", "123456789.987654321", "1000"} {
		d := decimal.RequireFromString(s)

		num, err := decimalToPgNumeric(d)
		require.NoError(t, err)

		assert.True(t, d.Equal(pgNumericToDecimal(num)), s)
	}

	assert.True(t, pgNumericToDecimal(pgtype.Numeric{}).IsZero())
}

func TestIsPgUniqueViolation(t *testing.T) {
	assert.True(t, isPgUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isPgUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isPgUniqueViolation(errors.New("boom")))
	assert.False(t, isPgUniqueViolation(nil))
}

// TestRepositories runs against a live database named by PENNYWISE_TEST_DATABASE_URL
func TestRepositories(t *testing.T) {
	url := os.Getenv("PENNYWISE_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("PENNYWISE_TEST_DATABASE_URL not set")
	}

	pool, err := Connect(context.Background(), url)
	require.NoError(t, err)
	defer pool.Close()

	txRepo := NewTransactionRepository(pool)
	budgetRepo := NewBudgetRepository(pool)
	goalRepo := NewGoalRepository(pool)

	require.NoError(t, txRepo.ReplaceAll(nil))
	require.NoError(t, txRepo.Append(domain.Transaction{Amount: decimal.RequireFromString("12.34"), Category: "Food", Date: "2024-01-05", Type: domain.TransactionTypeExpense}))
	txs, err := txRepo.List()
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "12.34", txs[0].Amount.StringFixed(2))

	require.NoError(t, txRepo.ReplaceAll(append(txs, txs...)))
	txs, err = txRepo.List()
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	budgets := domain.Budget{}.With("Rent", decimal.NewFromInt(900)).With("Food", decimal.NewFromInt(200))
	require.NoError(t, budgetRepo.Save(budgets))
	got, err := budgetRepo.GetAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Rent", "Food"}, got.Keys())

	goal := domain.SavingsGoal{ID: uuid.New(), Target: decimal.NewFromInt(600), MonthlySavings: decimal.NewFromInt(100), MonthsRemaining: 6, CreatedAt: time.Now().UTC()}
	require.NoError(t, goalRepo.Append(goal))
	assert.ErrorIs(t, goalRepo.Append(goal), domain.ErrInvalidInput)
}
