package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/dafibh/pennywise/pennywise-backend/internal/fileio"
	"github.com/dafibh/pennywise/pennywise-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// MaxImportSize limits the size of an uploaded transaction document
const MaxImportSize = 10 * 1024 * 1024 // 10MB

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
	archiveService     *service.ArchiveService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService, archiveService *service.ArchiveService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		archiveService:     archiveService,
	}
}

// CreateTransactionRequest represents the create transaction request body
type CreateTransactionRequest struct {
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Type     string `json:"type"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Type     string `json:"type"`
}

// CreateTransactionResponse is a stored transaction plus the alerts it raised
type CreateTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Alerts      []AlertResponse     `json:"alerts"`
}

// ImportResponse reports how many transactions an import stored
type ImportResponse struct {
	Imported int    `json:"imported"`
	Format   string `json:"format"`
	Mode     string `json:"mode"`
}

// CreateTransaction handles POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	txType, err := domain.ParseTransactionType(req.Type)
	if err != nil {
		return handleServiceError(c, err, "Failed to create transaction")
	}

	result, err := h.transactionService.Record(amount, req.Category, req.Date, txType)
	if err != nil {
		return handleServiceError(c, err, "Failed to create transaction")
	}

	return c.JSON(http.StatusCreated, CreateTransactionResponse{
		Transaction: toTransactionResponse(result.Transaction),
		Alerts:      toAlertResponses(result.Alerts),
	})
}

// GetTransactions handles GET /api/v1/transactions?type=
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	kind, err := parseKind(c.QueryParam("type"))
	if err != nil {
		return handleServiceError(c, err, "Failed to get transactions")
	}

	txs, err := h.transactionService.ListByType(kind)
	if err != nil {
		return handleServiceError(c, err, "Failed to get transactions")
	}

	response := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		response[i] = toTransactionResponse(tx)
	}
	return c.JSON(http.StatusOK, response)
}

// ImportTransactions handles POST /api/v1/transactions/import.
// The document is either a multipart "file" field, whose extension picks the
// format, or the raw request body with ?format=. ?mode=append keeps the
// stored transactions, the default replaces them.
func (h *TransactionHandler) ImportTransactions(c echo.Context) error {
	mode := service.ImportMode(c.QueryParam("mode"))
	if mode == "" {
		mode = service.ImportReplace
	}
	if mode != service.ImportReplace && mode != service.ImportAppend {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "mode", Message: "Mode must be one of: replace, append"},
		})
	}

	body, format, err := importSource(c)
	if err != nil {
		return handleServiceError(c, err, "Failed to read import")
	}
	defer body.Close()

	count, err := h.transactionService.Import(io.LimitReader(body, MaxImportSize), format, mode)
	if err != nil {
		return handleServiceError(c, err, "Failed to import transactions")
	}

	return c.JSON(http.StatusOK, ImportResponse{
		Imported: count,
		Format:   string(format),
		Mode:     string(mode),
	})
}

func importSource(c echo.Context) (io.ReadCloser, fileio.Format, error) {
	fileHeader, err := c.FormFile("file")
	if err == nil {
		format, err := fileio.FormatFromPath(fileHeader.Filename)
		if q := c.QueryParam("format"); q != "" {
			format, err = fileio.ParseFormat(q)
		}
		if err != nil {
			return nil, "", err
		}
		file, err := fileHeader.Open()
		if err != nil {
			return nil, "", err
		}
		return file, format, nil
	}
	if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		return nil, "", err
	}

	format, err := fileio.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return nil, "", err
	}
	return c.Request().Body, format, nil
}

// ExportTransactions handles GET /api/v1/transactions/export?format=
func (h *TransactionHandler) ExportTransactions(c echo.Context) error {
	q := c.QueryParam("format")
	if q == "" {
		q = string(fileio.FormatCSV)
	}
	format, err := fileio.ParseFormat(q)
	if err != nil {
		return handleServiceError(c, err, "Failed to export transactions")
	}

	var buf bytes.Buffer
	if err := h.transactionService.Export(&buf, format); err != nil {
		return handleServiceError(c, err, "Failed to export transactions")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="transactions`+format.Extension()+`"`)
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

// ArchiveTransactions handles POST /api/v1/transactions/archive?format=
func (h *TransactionHandler) ArchiveTransactions(c echo.Context) error {
	if !h.archiveService.IsEnabled() {
		return NewUnavailableError(c, "Archive storage is not configured")
	}

	q := c.QueryParam("format")
	if q == "" {
		q = string(fileio.FormatCSV)
	}
	format, err := fileio.ParseFormat(q)
	if err != nil {
		return handleServiceError(c, err, "Failed to archive transactions")
	}

	archive, err := h.archiveService.Archive(c.Request().Context(), format)
	if err != nil {
		return handleServiceError(c, err, "Failed to archive transactions")
	}
	return c.JSON(http.StatusCreated, archive)
}

func parseKind(s string) (domain.TransactionType, error) {
	if s == "" || s == "all" {
		return domain.AnyType, nil
	}
	return domain.ParseTransactionType(s)
}

func toTransactionResponse(tx domain.Transaction) TransactionResponse {
	return TransactionResponse{
		Amount:   formatAmount(tx.Amount),
		Category: tx.Category,
		Date:     tx.Date,
		Type:     string(tx.Type),
	}
}
