package service

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dafibh/pennywise/pennywise-backend/internal/analytics"
	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/dafibh/pennywise/pennywise-backend/internal/event"
	"github.com/dafibh/pennywise/pennywise-backend/internal/fileio"
	"github.com/dafibh/pennywise/pennywise-backend/internal/metrics"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ImportMode selects whether an import replaces or extends the stored transactions
type ImportMode string

const (
	ImportReplace ImportMode = "replace"
	ImportAppend  ImportMode = "append"
)

// RecordResult is a stored transaction plus the budget alerts it triggered
type RecordResult struct {
	Transaction domain.Transaction   `json:"transaction"`
	Alerts      []domain.BudgetAlert `json:"alerts"`
}

// TransactionService handles recording, import and export of transactions
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	budgetRepo      domain.BudgetRepository
	publisher       event.Publisher
	recorder        metrics.Recorder
	mu              sync.Mutex
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, budgetRepo domain.BudgetRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		publisher:       event.NoOpPublisher{},
		recorder:        metrics.NoOpRecorder{},
	}
}

// SetEventPublisher sets the publisher for transaction and alert events
func (s *TransactionService) SetEventPublisher(publisher event.Publisher) {
	s.publisher = publisher
}

// SetRecorder sets the metrics recorder
func (s *TransactionService) SetRecorder(recorder metrics.Recorder) {
	s.recorder = recorder
}

// Record validates and stores a transaction. An expense is checked against
// its category's budget and any resulting alert is returned and published.
func (s *TransactionService) Record(amount decimal.Decimal, category, date string, txType domain.TransactionType) (*RecordResult, error) {
	tx, err := domain.NewTransaction(amount, category, date, txType)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.transactionRepo.Append(tx); err != nil {
		log.Error().Err(err).Str("category", tx.Category).Msg("Failed to store transaction")
		return nil, err
	}
	s.recorder.RecordTransactions(string(tx.Type), 1)
	s.publisher.Publish(event.TransactionCreated(tx))

	log.Info().
		Str("category", tx.Category).
		Str("type", string(tx.Type)).
		Str("amount", tx.Amount.String()).
		Msg("Transaction recorded")

	result := &RecordResult{Transaction: tx, Alerts: []domain.BudgetAlert{}}
	if tx.Type != domain.TransactionTypeExpense {
		return result, nil
	}

	alerts, err := s.categoryAlerts(tx.Category)
	if err != nil {
		// the transaction is stored; alerting is best effort
		log.Warn().Err(err).Str("category", tx.Category).Msg("Failed to evaluate budget alerts")
		return result, nil
	}
	for _, alert := range alerts {
		s.recorder.RecordAlert(string(alert.Level))
		s.publisher.Publish(event.AlertRaised(alert))
	}
	result.Alerts = alerts
	return result, nil
}

func (s *TransactionService) categoryAlerts(category string) ([]domain.BudgetAlert, error) {
	budgets, err := s.budgetRepo.GetAll()
	if err != nil {
		return nil, err
	}
	limit, ok := budgets.Get(category)
	if !ok {
		return nil, nil
	}
	txs, err := s.transactionRepo.List()
	if err != nil {
		return nil, err
	}

	single := domain.Budget{}.With(category, limit)
	return analytics.Alerts(single, analytics.Usage(single, txs)), nil
}

// List returns every stored transaction in recording order
func (s *TransactionService) List() ([]domain.Transaction, error) {
	return s.transactionRepo.List()
}

// ListByType returns the stored transactions matching kind
func (s *TransactionService) ListByType(kind domain.TransactionType) ([]domain.Transaction, error) {
	txs, err := s.transactionRepo.List()
	if err != nil {
		return nil, err
	}
	filtered := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Matches(kind) {
			filtered = append(filtered, tx)
		}
	}
	return filtered, nil
}

// Import decodes r and stores the result. Nothing is stored when decoding fails.
func (s *TransactionService) Import(r io.Reader, format fileio.Format, mode ImportMode) (int, error) {
	txs, err := fileio.Decode(r, format)
	if err != nil {
		s.recorder.RecordImport(string(format), false, 0)
		log.Warn().Err(err).Str("format", string(format)).Msg("Import rejected")
		return 0, err
	}

	if err := s.store(txs, mode); err != nil {
		s.recorder.RecordImport(string(format), false, 0)
		log.Error().Err(err).Str("format", string(format)).Str("mode", string(mode)).Msg("Failed to store imported transactions")
		return 0, err
	}

	s.recorder.RecordImport(string(format), true, len(txs))
	s.publisher.Publish(event.TransactionsImported(map[string]any{
		"count":  len(txs),
		"format": format,
		"mode":   mode,
	}))
	log.Info().Int("count", len(txs)).Str("format", string(format)).Str("mode", string(mode)).Msg("Transactions imported")
	return len(txs), nil
}

// ImportFile imports the file at path, replacing the stored transactions
func (s *TransactionService) ImportFile(path string) (int, error) {
	format, err := fileio.FormatFromPath(path)
	if err != nil {
		return 0, err
	}

	file, err := os.Open(path)
	if err != nil {
		s.recorder.RecordImport(string(format), false, 0)
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	return s.Import(file, format, ImportReplace)
}

func (s *TransactionService) store(txs []domain.Transaction, mode ImportMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch mode {
	case ImportAppend:
		existing, err := s.transactionRepo.List()
		if err != nil {
			return err
		}
		return s.transactionRepo.ReplaceAll(append(existing, txs...))
	case ImportReplace, "":
		return s.transactionRepo.ReplaceAll(txs)
	}
	return fmt.Errorf("%w: unknown import mode %q", domain.ErrInvalidInput, mode)
}

// Export writes every stored transaction to w
func (s *TransactionService) Export(w io.Writer, format fileio.Format) error {
	txs, err := s.transactionRepo.List()
	if err != nil {
		return err
	}
	if err := fileio.Encode(w, format, txs); err != nil {
		return err
	}
	s.recorder.RecordExport(string(format))
	return nil
}

// ExportFile writes every stored transaction to path
func (s *TransactionService) ExportFile(path string) (int, error) {
	txs, err := s.transactionRepo.List()
	if err != nil {
		return 0, err
	}
	if err := fileio.Export(path, txs); err != nil {
		return 0, err
	}
	if format, err := fileio.FormatFromPath(path); err == nil {
		s.recorder.RecordExport(string(format))
	}
	log.Info().Int("count", len(txs)).Str("path", path).Msg("Transactions exported")
	return len(txs), nil
}
