package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dafibh/pennywise/pennywise-backend/internal/config"
	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	store, err := Open(context.Background(), &config.Config{StorageBackend: config.BackendMemory})

	require.NoError(t, err)
	assert.NotNil(t, store.Transactions)
	assert.NoError(t, store.Close())
}

func TestOpen_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pennywise.db")
	cfg := &config.Config{StorageBackend: config.BackendSQLite, SQLitePath: path}

	store, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, store.Transactions.Append(domain.Transaction{
		Amount: decimal.NewFromInt(5), Category: "Food", Date: "2024-01-01", Type: domain.TransactionTypeExpense,
	}))
	require.NoError(t, store.Close())

	reopened, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer reopened.Close()
	txs, err := reopened.Transactions.List()
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestOpen_Unsupported(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StorageBackend: "sheets"})
	assert.Error(t, err)
}
