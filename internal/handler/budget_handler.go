package handler

import (
	"net/http"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/dafibh/pennywise/pennywise-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// SetBudgetRequest represents the set budget request body
type SetBudgetRequest struct {
	Limit string `json:"limit"`
}

// BudgetResponse represents a category limit in API responses
type BudgetResponse struct {
	Category string `json:"category"`
	Limit    string `json:"limit"`
}

// AlertResponse represents a budget alert in API responses
type AlertResponse struct {
	Category string `json:"category"`
	Level    string `json:"level"`
	Used     string `json:"used"`
	Limit    string `json:"limit"`
	Message  string `json:"message"`
}

// BudgetStatusResponse represents the headroom of one budgeted category
type BudgetStatusResponse struct {
	Category  string `json:"category"`
	Limit     string `json:"limit"`
	Spent     string `json:"spent"`
	Remaining string `json:"remaining"`
	Status    string `json:"status"`
}

// SetBudget handles PUT /api/v1/budgets/:category
func (h *BudgetHandler) SetBudget(c echo.Context) error {
	category := c.Param("category")

	var req SetBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	limit, err := decimal.NewFromString(req.Limit)
	if err != nil {
		return NewValidationError(c, "Invalid limit", []ValidationError{
			{Field: "limit", Message: "Must be a valid decimal number"},
		})
	}

	budgets, err := h.budgetService.SetBudget(category, limit)
	if err != nil {
		return handleServiceError(c, err, "Failed to set budget")
	}
	return c.JSON(http.StatusOK, toBudgetResponses(budgets))
}

// GetBudgets handles GET /api/v1/budgets
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	budgets, err := h.budgetService.Budgets()
	if err != nil {
		return handleServiceError(c, err, "Failed to get budgets")
	}
	return c.JSON(http.StatusOK, toBudgetResponses(budgets))
}

// GetUsage handles GET /api/v1/budgets/usage
func (h *BudgetHandler) GetUsage(c echo.Context) error {
	usage, err := h.budgetService.Usage()
	if err != nil {
		return handleServiceError(c, err, "Failed to get budget usage")
	}
	return c.JSON(http.StatusOK, toCategoryAmounts(usage))
}

// GetAlerts handles GET /api/v1/budgets/alerts
func (h *BudgetHandler) GetAlerts(c echo.Context) error {
	alerts, err := h.budgetService.Alerts()
	if err != nil {
		return handleServiceError(c, err, "Failed to get budget alerts")
	}
	return c.JSON(http.StatusOK, toAlertResponses(alerts))
}

// GetStatus handles GET /api/v1/budgets/status
func (h *BudgetHandler) GetStatus(c echo.Context) error {
	status, err := h.budgetService.Status()
	if err != nil {
		return handleServiceError(c, err, "Failed to get budget status")
	}
	return c.JSON(http.StatusOK, toStatusResponses(status))
}

func toBudgetResponses(budgets domain.Budget) []BudgetResponse {
	entries := budgets.Entries()
	resp := make([]BudgetResponse, len(entries))
	for i, e := range entries {
		resp[i] = BudgetResponse{Category: e.Key, Limit: formatAmount(e.Amount)}
	}
	return resp
}

func toAlertResponses(alerts []domain.BudgetAlert) []AlertResponse {
	resp := make([]AlertResponse, len(alerts))
	for i, a := range alerts {
		resp[i] = AlertResponse{
			Category: a.Category,
			Level:    string(a.Level),
			Used:     formatAmount(a.Used),
			Limit:    formatAmount(a.Limit),
			Message:  a.Message,
		}
	}
	return resp
}

func toStatusResponses(status []domain.BudgetStatus) []BudgetStatusResponse {
	resp := make([]BudgetStatusResponse, len(status))
	for i, s := range status {
		resp[i] = BudgetStatusResponse{
			Category:  s.Category,
			Limit:     formatAmount(s.Limit),
			Spent:     formatAmount(s.Spent),
			Remaining: formatAmount(s.Remaining),
			Status:    string(s.Status),
		}
	}
	return resp
}
