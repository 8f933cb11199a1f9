// Package repository opens the configured storage backend.
package repository

import (
	"context"
	"fmt"

	"github.com/dafibh/pennywise/pennywise-backend/internal/config"
	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/dafibh/pennywise/pennywise-backend/internal/repository/memory"
	"github.com/dafibh/pennywise/pennywise-backend/internal/repository/postgres"
	"github.com/dafibh/pennywise/pennywise-backend/internal/repository/sqlite"
	"github.com/rs/zerolog/log"
)

// Store bundles the repositories of one backend
type Store struct {
	Transactions domain.TransactionRepository
	Budgets      domain.BudgetRepository
	Goals        domain.GoalRepository

	close func() error
}

// Close releases the backend's connections
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// NewMemoryStore returns a store that forgets everything on exit
func NewMemoryStore() *Store {
	return &Store{
		Transactions: memory.NewTransactionRepository(),
		Budgets:      memory.NewBudgetRepository(),
		Goals:        memory.NewGoalRepository(),
	}
}

// Open builds the store selected by cfg.StorageBackend
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		log.Info().Msg("Initialized memory backend")
		return NewMemoryStore(), nil

	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite backend: %w", err)
		}
		log.Info().Str("db_path", cfg.SQLitePath).Msg("Initialized SQLite backend")
		return &Store{
			Transactions: sqlite.NewTransactionRepository(db),
			Budgets:      sqlite.NewBudgetRepository(db),
			Goals:        sqlite.NewGoalRepository(db),
			close:        db.Close,
		}, nil

	case config.BackendPostgres:
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize PostgreSQL backend: %w", err)
		}
		log.Info().Msg("Initialized PostgreSQL backend")
		return &Store{
			Transactions: postgres.NewTransactionRepository(pool),
			Budgets:      postgres.NewBudgetRepository(pool),
			Goals:        postgres.NewGoalRepository(pool),
			close: func() error {
				pool.Close()
				return nil
			},
		}, nil
	}
	return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
}
