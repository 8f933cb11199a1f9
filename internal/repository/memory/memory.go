// Package memory keeps transactions, budgets and goals in process memory.
// Every repository is safe for concurrent use and hands out copies.
package memory

import (
	"sync"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository
type TransactionRepository struct {
	mu  sync.RWMutex
	txs []domain.Transaction
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

func (r *TransactionRepository) Append(tx domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs = append(r.txs, tx)
	return nil
}

func (r *TransactionRepository) List() ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Transaction, len(r.txs))
	copy(out, r.txs)
	return out, nil
}

func (r *TransactionRepository) ReplaceAll(txs []domain.Transaction) error {
	next := make([]domain.Transaction, len(txs))
	copy(next, txs)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs = next
	return nil
}

// BudgetRepository implements domain.BudgetRepository.
// domain.Budget values are immutable, so storing one needs no copy.
type BudgetRepository struct {
	mu      sync.RWMutex
	budgets domain.Budget
}

func NewBudgetRepository() *BudgetRepository {
	return &BudgetRepository{}
}

func (r *BudgetRepository) GetAll() (domain.Budget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.budgets, nil
}

func (r *BudgetRepository) Save(budgets domain.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.budgets = budgets
	return nil
}

// GoalRepository implements domain.GoalRepository
type GoalRepository struct {
	mu    sync.RWMutex
	goals []domain.SavingsGoal
}

func NewGoalRepository() *GoalRepository {
	return &GoalRepository{}
}

func (r *GoalRepository) Append(goal domain.SavingsGoal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goals = append(r.goals, goal)
	return nil
}

func (r *GoalRepository) List() ([]domain.SavingsGoal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.SavingsGoal, len(r.goals))
	copy(out, r.goals)
	return out, nil
}
