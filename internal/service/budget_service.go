package service

import (
	"strings"
	"sync"

	"github.com/dafibh/pennywise/pennywise-backend/internal/analytics"
	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/dafibh/pennywise/pennywise-backend/internal/event"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetService handles budget limits and usage tracking
type BudgetService struct {
	budgetRepo      domain.BudgetRepository
	transactionRepo domain.TransactionRepository
	publisher       event.Publisher
	mu              sync.Mutex
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, transactionRepo domain.TransactionRepository) *BudgetService {
	return &BudgetService{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		publisher:       event.NoOpPublisher{},
	}
}

// SetEventPublisher sets the publisher for budget events
func (s *BudgetService) SetEventPublisher(publisher event.Publisher) {
	s.publisher = publisher
}

// SetBudget sets or replaces the limit of a category and returns the updated mapping
func (s *BudgetService) SetBudget(category string, limit decimal.Decimal) (domain.Budget, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return domain.Budget{}, domain.ErrCategoryRequired
	}
	if len(category) > domain.MaxCategoryLength {
		return domain.Budget{}, domain.ErrCategoryTooLong
	}
	if limit.IsNegative() {
		return domain.Budget{}, domain.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	budgets, err := s.budgetRepo.GetAll()
	if err != nil {
		return domain.Budget{}, err
	}
	updated := analytics.SetBudget(budgets, category, limit)
	if err := s.budgetRepo.Save(updated); err != nil {
		log.Error().Err(err).Str("category", category).Msg("Failed to save budget")
		return domain.Budget{}, err
	}

	s.publisher.Publish(event.BudgetUpdated(map[string]string{
		"category": category,
		"limit":    limit.StringFixed(2),
	}))
	log.Info().Str("category", category).Str("limit", limit.String()).Msg("Budget set")
	return updated, nil
}

// Budgets returns the configured limits in the order they were first set
func (s *BudgetService) Budgets() (domain.Budget, error) {
	return s.budgetRepo.GetAll()
}

// Usage returns the expense total of every budgeted category
func (s *BudgetService) Usage() (domain.BudgetUsage, error) {
	budgets, txs, err := s.load()
	if err != nil {
		return domain.BudgetUsage{}, err
	}
	return analytics.Usage(budgets, txs), nil
}

// Alerts returns the warning and exceeded alerts for the current usage
func (s *BudgetService) Alerts() ([]domain.BudgetAlert, error) {
	budgets, txs, err := s.load()
	if err != nil {
		return nil, err
	}
	return analytics.Alerts(budgets, analytics.Usage(budgets, txs)), nil
}

// Status returns spent and remaining amounts per budgeted category
func (s *BudgetService) Status() ([]domain.BudgetStatus, error) {
	budgets, txs, err := s.load()
	if err != nil {
		return nil, err
	}
	return analytics.Status(budgets, txs), nil
}

func (s *BudgetService) load() (domain.Budget, []domain.Transaction, error) {
	budgets, err := s.budgetRepo.GetAll()
	if err != nil {
		return domain.Budget{}, nil, err
	}
	txs, err := s.transactionRepo.List()
	if err != nil {
		return domain.Budget{}, nil, err
	}
	return budgets, txs, nil
}
