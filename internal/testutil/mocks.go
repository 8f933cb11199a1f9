package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/dafibh/pennywise/pennywise-backend/internal/event"
	"github.com/shopspring/decimal"
)

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions []domain.Transaction
	AppendFn     func(tx domain.Transaction) error
	ListFn       func() ([]domain.Transaction, error)
	ReplaceFn    func(txs []domain.Transaction) error
	mu           sync.Mutex
}

// NewMockTransactionRepository creates a new MockTransactionRepository seeded with txs
func NewMockTransactionRepository(txs ...domain.Transaction) *MockTransactionRepository {
	return &MockTransactionRepository{Transactions: txs}
}

func (m *MockTransactionRepository) Append(tx domain.Transaction) error {
	if m.AppendFn != nil {
		return m.AppendFn(tx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions = append(m.Transactions, tx)
	return nil
}

func (m *MockTransactionRepository) List() ([]domain.Transaction, error) {
	if m.ListFn != nil {
		return m.ListFn()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Transaction, len(m.Transactions))
	copy(out, m.Transactions)
	return out, nil
}

func (m *MockTransactionRepository) ReplaceAll(txs []domain.Transaction) error {
	if m.ReplaceFn != nil {
		return m.ReplaceFn(txs)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions = append([]domain.Transaction(nil), txs...)
	return nil
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets domain.Budget
	GetFn   func() (domain.Budget, error)
	SaveFn  func(budgets domain.Budget) error
	Saves   int
	mu      sync.Mutex
}

// NewMockBudgetRepository creates a repository holding the given category/limit pairs
func NewMockBudgetRepository(pairs ...string) *MockBudgetRepository {
	return &MockBudgetRepository{Budgets: Budget(pairs...)}
}

func (m *MockBudgetRepository) GetAll() (domain.Budget, error) {
	if m.GetFn != nil {
		return m.GetFn()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Budgets, nil
}

func (m *MockBudgetRepository) Save(budgets domain.Budget) error {
	if m.SaveFn != nil {
		return m.SaveFn(budgets)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Budgets = budgets
	m.Saves++
	return nil
}

// MockGoalRepository is a mock implementation of domain.GoalRepository
type MockGoalRepository struct {
	Goals    []domain.SavingsGoal
	AppendFn func(goal domain.SavingsGoal) error
	ListFn   func() ([]domain.SavingsGoal, error)
	mu       sync.Mutex
}

func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{}
}

func (m *MockGoalRepository) Append(goal domain.SavingsGoal) error {
	if m.AppendFn != nil {
		return m.AppendFn(goal)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Goals = append(m.Goals, goal)
	return nil
}

func (m *MockGoalRepository) List() ([]domain.SavingsGoal, error) {
	if m.ListFn != nil {
		return m.ListFn()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.SavingsGoal{}, m.Goals...), nil
}

// MockPublisher records published events
type MockPublisher struct {
	Events []event.Event
	mu     sync.Mutex
}

func (m *MockPublisher) Publish(e event.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, e)
}

// Types returns the type of every published event in order
func (m *MockPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Type
	}
	return types
}

// MockArchiveRepository keeps uploaded objects in memory
type MockArchiveRepository struct {
	Objects     map[string][]byte
	ContentType map[string]string
	UploadFn    func(objectPath string) error
	PresignFn   func(objectPath string) error
	Deleted     []string
}

func NewMockArchiveRepository() *MockArchiveRepository {
	return &MockArchiveRepository{
		Objects:     make(map[string][]byte),
		ContentType: make(map[string]string),
	}
}

func (m *MockArchiveRepository) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	if m.UploadFn != nil {
		if err := m.UploadFn(objectPath); err != nil {
			return "", err
		}
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, data); err != nil {
		return "", err
	}
	m.Objects[objectPath] = buf.Bytes()
	m.ContentType[objectPath] = contentType
	return objectPath, nil
}

func (m *MockArchiveRepository) Delete(ctx context.Context, objectPath string) error {
	delete(m.Objects, objectPath)
	m.Deleted = append(m.Deleted, objectPath)
	return nil
}

func (m *MockArchiveRepository) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	if m.PresignFn != nil {
		if err := m.PresignFn(objectPath); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("https://archive.test/%s?expires=%d", objectPath, int(expiry.Seconds())), nil
}

// Expense builds an expense transaction from a decimal string
func Expense(amount, category, date string) domain.Transaction {
	return domain.Transaction{
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Date:     date,
		Type:     domain.TransactionTypeExpense,
	}
}

// Income builds an income transaction from a decimal string
func Income(amount, category, date string) domain.Transaction {
	return domain.Transaction{
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Date:     date,
		Type:     domain.TransactionTypeIncome,
	}
}

// Budget builds a budget from alternating category and limit strings
func Budget(pairs ...string) domain.Budget {
	var b domain.AmountsBuilder[string]
	for i := 0; i+1 < len(pairs); i += 2 {
		b.Set(pairs[i], decimal.RequireFromString(pairs[i+1]))
	}
	return b.Build()
}
