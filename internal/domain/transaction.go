package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	// AnyType matches every transaction when used as a filter
	AnyType                TransactionType = ""
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// DateLayout is the ISO-8601 calendar date layout of transaction dates
const DateLayout = "2006-01-02"

// IsValid reports whether t is income or expense
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// ParseTransactionType parses a user supplied type name, ignoring case and surrounding spaces
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", ErrInvalidTransactionType
	}
	return t, nil
}

// Transaction is a single income or expense record.
// Amount is always a non-negative magnitude; its effect comes from Type.
type Transaction struct {
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
	Type     TransactionType `json:"type"`
}

// NewTransaction validates its arguments, including the date, and builds a Transaction
func NewTransaction(amount decimal.Decimal, category, date string, txType TransactionType) (Transaction, error) {
	tx := Transaction{
		Amount:   amount,
		Category: strings.TrimSpace(category),
		Date:     strings.TrimSpace(date),
		Type:     txType,
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	if _, err := tx.ParsedDate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// Validate checks amount, category and type. The date is checked lazily by ParsedDate.
func (t Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrCategoryRequired
	}
	if len(t.Category) > MaxCategoryLength {
		return ErrCategoryTooLong
	}
	if !t.Type.IsValid() {
		return ErrInvalidTransactionType
	}
	return nil
}

// ParsedDate parses Date as an ISO-8601 calendar date, falling back to RFC 3339 timestamps
func (t Transaction) ParsedDate() (time.Time, error) {
	if d, err := time.Parse(DateLayout, t.Date); err == nil {
		return d, nil
	}
	if d, err := time.Parse(time.RFC3339, t.Date); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, t.Date)
}

// Matches reports whether the transaction passes the kind filter
func (t Transaction) Matches(kind TransactionType) bool {
	return kind == AnyType || t.Type == kind
}

// Totals holds income and expense totals over a set of transactions
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

type TransactionRepository interface {
	Append(tx Transaction) error
	List() ([]Transaction, error)
	ReplaceAll(txs []Transaction) error
}
