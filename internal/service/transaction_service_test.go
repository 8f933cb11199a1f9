package service

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/dafibh/pennywise/pennywise-backend/internal/fileio"
	"github.com/dafibh/pennywise/pennywise-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedImport struct {
	format  string
	success bool
	count   int
}

// fakeRecorder captures metric calls
type fakeRecorder struct {
	mu           sync.Mutex
	transactions map[string]int
	imports      []recordedImport
	exports      []string
	alerts       []string
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{transactions: make(map[string]int)}
}

func (r *fakeRecorder) RecordTransactions(kind string, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions[kind] += count
}

func (r *fakeRecorder) RecordImport(format string, success bool, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.imports = append(r.imports, recordedImport{format, success, count})
}

func (r *fakeRecorder) RecordExport(format string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exports = append(r.exports, format)
}

func (r *fakeRecorder) RecordAlert(level string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, level)
}

func (r *fakeRecorder) RecordRequest(method, route string, status int, duration time.Duration) {}

func newTestTransactionService(txs ...domain.Transaction) (*TransactionService, *testutil.MockTransactionRepository, *testutil.MockBudgetRepository) {
	transactionRepo := testutil.NewMockTransactionRepository(txs...)
	budgetRepo := testutil.NewMockBudgetRepository()
	return NewTransactionService(transactionRepo, budgetRepo), transactionRepo, budgetRepo
}

func TestRecord_Success(t *testing.T) {
	svc, repo, _ := newTestTransactionService()
	publisher := &testutil.MockPublisher{}
	recorder := newFakeRecorder()
	svc.SetEventPublisher(publisher)
	svc.SetRecorder(recorder)

	result, err := svc.Record(decimal.NewFromInt(50), " Food ", "2024-03-01", domain.TransactionTypeExpense)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Transaction.Category != "Food" {
		t.Errorf("Expected category 'Food', got %s", result.Transaction.Category)
	}
	if len(result.Alerts) != 0 {
		t.Errorf("Expected no alerts without a budget, got %v", result.Alerts)
	}
	if len(repo.Transactions) != 1 {
		t.Fatalf("Expected 1 stored transaction, got %d", len(repo.Transactions))
	}
	if got := publisher.Types(); len(got) != 1 || got[0] != "transaction.created" {
		t.Errorf("Expected [transaction.created], got %v", got)
	}
	if recorder.transactions["expense"] != 1 {
		t.Errorf("Expected 1 expense recorded, got %d", recorder.transactions["expense"])
	}
}

func TestRecord_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		category string
		date     string
		txType   domain.TransactionType
		wantErr  error
	}{
		{"negative amount", decimal.NewFromInt(-1), "Food", "2024-03-01", domain.TransactionTypeExpense, domain.ErrInvalidAmount},
		{"empty category", decimal.NewFromInt(1), "  ", "2024-03-01", domain.TransactionTypeExpense, domain.ErrCategoryRequired},
		{"bad type", decimal.NewFromInt(1), "Food", "2024-03-01", "transfer", domain.ErrInvalidTransactionType},
		{"bad date", decimal.NewFromInt(1), "Food", "03/01/2024", domain.TransactionTypeExpense, domain.ErrMalformedDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestTransactionService()
			_, err := svc.Record(tt.amount, tt.category, tt.date, tt.txType)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if len(repo.Transactions) != 0 {
				t.Errorf("Expected nothing stored, got %d", len(repo.Transactions))
			}
		})
	}
}

func TestRecord_RaisesBudgetAlerts(t *testing.T) {
	svc, _, budgetRepo := newTestTransactionService(testutil.Expense("60", "Food", "2024-03-01"))
	budgetRepo.Budgets = testutil.Budget("Food", "100", "Rent", "10")
	publisher := &testutil.MockPublisher{}
	recorder := newFakeRecorder()
	svc.SetEventPublisher(publisher)
	svc.SetRecorder(recorder)

	result, err := svc.Record(decimal.NewFromInt(35), "Food", "2024-03-02", domain.TransactionTypeExpense)
	require.NoError(t, err)

	require.Len(t, result.Alerts, 1)
	assert.Equal(t, domain.AlertLevelWarning, result.Alerts[0].Level)
	assert.Equal(t, "Food", result.Alerts[0].Category)
	assert.Equal(t, []string{"transaction.created", "alert.raised"}, publisher.Types())
	assert.Equal(t, []string{"warning"}, recorder.alerts)

	result, err = svc.Record(decimal.NewFromInt(10), "Food", "2024-03-03", domain.TransactionTypeExpense)
	require.NoError(t, err)
	require.Len(t, result.Alerts, 1)
	assert.Equal(t, domain.AlertLevelExceeded, result.Alerts[0].Level)
}

func TestRecord_IncomeNeverAlerts(t *testing.T) {
	svc, _, budgetRepo := newTestTransactionService()
	budgetRepo.Budgets = testutil.Budget("Salary", "1")

	result, err := svc.Record(decimal.NewFromInt(5000), "Salary", "2024-03-01", domain.TransactionTypeIncome)
	require.NoError(t, err)
	assert.Empty(t, result.Alerts)
}

func TestRecord_AlertFailureKeepsTransaction(t *testing.T) {
	svc, repo, budgetRepo := newTestTransactionService()
	budgetRepo.GetFn = func() (domain.Budget, error) { return domain.Budget{}, errors.New("db down") }

	result, err := svc.Record(decimal.NewFromInt(5), "Food", "2024-03-01", domain.TransactionTypeExpense)
	require.NoError(t, err)
	assert.Empty(t, result.Alerts)
	assert.Len(t, repo.Transactions, 1)
}

func TestRecord_RepositoryError(t *testing.T) {
	svc, repo, _ := newTestTransactionService()
	repo.AppendFn = func(domain.Transaction) error { return errors.New("disk full") }

	_, err := svc.Record(decimal.NewFromInt(5), "Food", "2024-03-01", domain.TransactionTypeExpense)
	if err == nil {
		t.Fatal("Expected error")
	}
}

func TestListByType(t *testing.T) {
	svc, _, _ := newTestTransactionService(
		testutil.Expense("10", "Food", "2024-03-01"),
		testutil.Income("100", "Salary", "2024-03-01"),
		testutil.Expense("5", "Fun", "2024-03-02"),
	)

	expenses, err := svc.ListByType(domain.TransactionTypeExpense)
	require.NoError(t, err)
	assert.Len(t, expenses, 2)

	all, err := svc.ListByType(domain.AnyType)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestImport_ReplacesByDefault(t *testing.T) {
	svc, repo, _ := newTestTransactionService(testutil.Expense("1", "Old", "2023-01-01"))
	publisher := &testutil.MockPublisher{}
	recorder := newFakeRecorder()
	svc.SetEventPublisher(publisher)
	svc.SetRecorder(recorder)

	csv := "amount,category,date,type\n10,Food,2024-03-01,expense\n20,Salary,2024-03-02,income\n"
	count, err := svc.Import(strings.NewReader(csv), fileio.FormatCSV, ImportReplace)
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	require.Len(t, repo.Transactions, 2)
	assert.Equal(t, "Food", repo.Transactions[0].Category)
	assert.Equal(t, []string{"transaction.imported"}, publisher.Types())
	assert.Equal(t, []recordedImport{{"csv", true, 2}}, recorder.imports)
}

func TestImport_Append(t *testing.T) {
	svc, repo, _ := newTestTransactionService(testutil.Expense("1", "Old", "2023-01-01"))

	doc := `[{"amount": 10, "category": "Food", "date": "2024-03-01", "type": "expense"}]`
	count, err := svc.Import(strings.NewReader(doc), fileio.FormatJSON, ImportAppend)
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	require.Len(t, repo.Transactions, 2)
	assert.Equal(t, "Old", repo.Transactions[0].Category)
	assert.Equal(t, "Food", repo.Transactions[1].Category)
}

func TestImport_MalformedLeavesStoreUntouched(t *testing.T) {
	svc, repo, _ := newTestTransactionService(testutil.Expense("1", "Old", "2023-01-01"))
	recorder := newFakeRecorder()
	svc.SetRecorder(recorder)

	csv := "amount,category,date,type\nabc,Food,2024-03-01,expense\n"
	_, err := svc.Import(strings.NewReader(csv), fileio.FormatCSV, ImportReplace)
	require.ErrorIs(t, err, domain.ErrMalformedRecord)

	require.Len(t, repo.Transactions, 1)
	assert.Equal(t, "Old", repo.Transactions[0].Category)
	assert.Equal(t, []recordedImport{{"csv", false, 0}}, recorder.imports)
}

func TestImport_UnparsedDateRejected(t *testing.T) {
	svc, repo, budgetRepo := newTestTransactionService(testutil.Expense("40", "Food", "2024-01-10"))

	csv := "amount,category,date,type\n10,Food,someday,expense\n"
	count, err := svc.Import(strings.NewReader(csv), fileio.FormatCSV, ImportReplace)
	require.ErrorIs(t, err, domain.ErrMalformedRecord)
	assert.ErrorIs(t, err, domain.ErrMalformedDate)
	assert.Equal(t, 0, count)
	require.Len(t, repo.Transactions, 1)

	analyticsService := NewAnalyticsService(repo, NewBudgetService(budgetRepo, repo), NewSavingsService(testutil.NewMockGoalRepository()))
	_, err = analyticsService.Trends(2024, 1)
	assert.NoError(t, err)
	_, err = analyticsService.Monthly(domain.AnyType)
	assert.NoError(t, err)
}

func TestImport_StoreFailureRecorded(t *testing.T) {
	svc, repo, _ := newTestTransactionService()
	repo.ReplaceFn = func([]domain.Transaction) error { return errors.New("disk full") }
	publisher := &testutil.MockPublisher{}
	recorder := newFakeRecorder()
	svc.SetEventPublisher(publisher)
	svc.SetRecorder(recorder)

	csv := "amount,category,date,type\n1,Food,2024-03-01,expense\n"
	_, err := svc.Import(strings.NewReader(csv), fileio.FormatCSV, ImportReplace)

	assert.EqualError(t, err, "disk full")
	assert.Empty(t, publisher.Types())
	assert.Equal(t, []recordedImport{{"csv", false, 0}}, recorder.imports)
}

func TestImport_UnknownMode(t *testing.T) {
	svc, _, _ := newTestTransactionService()
	csv := "amount,category,date,type\n1,Food,2024-03-01,expense\n"

	_, err := svc.Import(strings.NewReader(csv), fileio.FormatCSV, "merge")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExport_WritesStoredTransactions(t *testing.T) {
	svc, _, _ := newTestTransactionService(testutil.Expense("12.5", "Food", "2024-03-01"))
	recorder := newFakeRecorder()
	svc.SetRecorder(recorder)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(&buf, fileio.FormatCSV))

	assert.Equal(t, "amount,category,date,type\n12.5,Food,2024-03-01,expense\n", buf.String())
	assert.Equal(t, []string{"csv"}, recorder.exports)
}

func TestExportImportFile_RoundTrip(t *testing.T) {
	original := []domain.Transaction{
		testutil.Expense("12.5", "Food", "2024-03-01"),
		testutil.Income("1000", "Salary", "2024-03-05"),
	}
	svc, _, _ := newTestTransactionService(original...)
	path := filepath.Join(t.TempDir(), "out.json")

	count, err := svc.ExportFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	_, err = os.Stat(path)
	require.NoError(t, err)

	other, repo, _ := newTestTransactionService()
	count, err = other.ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, repo.Transactions, 2)
	for i := range original {
		assert.True(t, original[i].Amount.Equal(repo.Transactions[i].Amount))
		assert.Equal(t, original[i].Category, repo.Transactions[i].Category)
	}
}

func TestImportFile_UnsupportedExtension(t *testing.T) {
	svc, _, _ := newTestTransactionService()
	_, err := svc.ImportFile("data.xml")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestImportFile_PublishesAndRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("amount,category,date,type\n10,Food,2024-03-01,expense\n"), 0o644))

	svc, repo, _ := newTestTransactionService(testutil.Expense("1", "Old", "2023-01-01"))
	publisher := &testutil.MockPublisher{}
	recorder := newFakeRecorder()
	svc.SetEventPublisher(publisher)
	svc.SetRecorder(recorder)

	count, err := svc.ImportFile(path)
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	require.Len(t, repo.Transactions, 1)
	assert.Equal(t, "Food", repo.Transactions[0].Category)
	assert.Equal(t, []string{"transaction.imported"}, publisher.Types())
	assert.Equal(t, []recordedImport{{"csv", true, 1}}, recorder.imports)
}

func TestImportFile_Failures(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("amount,category,date,type\n10,Food,someday,expense\n"), 0o644))

	svc, repo, _ := newTestTransactionService(testutil.Expense("1", "Old", "2023-01-01"))
	publisher := &testutil.MockPublisher{}
	recorder := newFakeRecorder()
	svc.SetEventPublisher(publisher)
	svc.SetRecorder(recorder)

	_, err := svc.ImportFile(bad)
	assert.ErrorIs(t, err, domain.ErrMalformedDate)

	_, err = svc.ImportFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.Len(t, repo.Transactions, 1)
	assert.Empty(t, publisher.Types())
	assert.Equal(t, []recordedImport{{"csv", false, 0}, {"json", false, 0}}, recorder.imports)
}
