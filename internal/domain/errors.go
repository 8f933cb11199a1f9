package domain

import "errors"

// Domain errors
var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidDuration        = errors.New("months must be greater than 0")
	ErrMalformedRecord        = errors.New("malformed record")
	ErrMalformedDate          = errors.New("malformed date")
	ErrUnsupportedFileType    = errors.New("unsupported file type, please use CSV or JSON")
	ErrInvalidAmount          = errors.New("amount must be a non-negative number")
	ErrInvalidTarget          = errors.New("target must be greater than 0")
	ErrCategoryRequired       = errors.New("category is required")
	ErrCategoryTooLong        = errors.New("category exceeds maximum length")
	ErrInvalidTransactionType = errors.New("transaction type must be income or expense")
)

// Validation constants
const (
	MaxCategoryLength = 100
)
