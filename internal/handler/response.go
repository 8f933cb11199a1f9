package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation  = "https://pennywise.app/errors/validation"
	ErrorTypeUnavailable = "https://pennywise.app/errors/unavailable"
	ErrorTypeInternal    = "https://pennywise.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewUnavailableError creates a service unavailable error response
func NewUnavailableError(c echo.Context, detail string) error {
	return c.JSON(http.StatusServiceUnavailable, ProblemDetails{
		Type:     ErrorTypeUnavailable,
		Title:    "Service Unavailable",
		Status:   http.StatusServiceUnavailable,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// fieldErrors maps domain validation errors to the request field they concern
var fieldErrors = []struct {
	err     error
	field   string
	message string
}{
	{domain.ErrInvalidAmount, "amount", "Amount must be a non-negative number"},
	{domain.ErrCategoryRequired, "category", "Category is required"},
	{domain.ErrCategoryTooLong, "category", "Category must be 100 characters or less"},
	{domain.ErrInvalidTransactionType, "type", "Type must be one of: income, expense"},
	{domain.ErrMalformedDate, "date", "Must be in YYYY-MM-DD format"},
	{domain.ErrInvalidDuration, "months", "Months must be greater than 0"},
	{domain.ErrInvalidTarget, "target", "Target must be greater than 0"},
	{domain.ErrUnsupportedFileType, "format", "Format must be one of: csv, json"},
}

// handleServiceError writes the problem response for err. Known validation
// errors become 400 responses, anything else is logged and becomes a 500.
func handleServiceError(c echo.Context, err error, msg string) error {
	for _, fe := range fieldErrors {
		if errors.Is(err, fe.err) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: fe.field, Message: fe.message},
			})
		}
	}
	if errors.Is(err, domain.ErrMalformedRecord) || errors.Is(err, domain.ErrInvalidInput) {
		return NewValidationError(c, err.Error(), nil)
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg(msg)
	return NewInternalError(c, msg)
}

// AmountResponse is one key/amount pair of an ordered summary
type AmountResponse struct {
	Key    string `json:"key"`
	Amount string `json:"amount"`
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toCategoryAmounts(a domain.Amounts[string]) []AmountResponse {
	entries := a.Entries()
	resp := make([]AmountResponse, len(entries))
	for i, e := range entries {
		resp[i] = AmountResponse{Key: e.Key, Amount: formatAmount(e.Amount)}
	}
	return resp
}
