package handler

import (
	"net/http"
	"time"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/dafibh/pennywise/pennywise-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// GoalHandler handles savings goal HTTP requests
type GoalHandler struct {
	savingsService *service.SavingsService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(savingsService *service.SavingsService) *GoalHandler {
	return &GoalHandler{savingsService: savingsService}
}

// CreateGoalRequest represents the create goal request body
type CreateGoalRequest struct {
	Target string `json:"target"`
	Months int    `json:"months"`
}

// GoalResponse represents a savings goal in API responses
type GoalResponse struct {
	ID              string `json:"id"`
	Target          string `json:"target"`
	MonthlySavings  string `json:"monthlySavings"`
	MonthsRemaining int    `json:"monthsRemaining"`
	CreatedAt       string `json:"createdAt"`
}

// CreateGoal handles POST /api/v1/goals
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	var req CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	target, err := decimal.NewFromString(req.Target)
	if err != nil {
		return NewValidationError(c, "Invalid target", []ValidationError{
			{Field: "target", Message: "Must be a valid decimal number"},
		})
	}

	goal, err := h.savingsService.SetGoal(target, req.Months)
	if err != nil {
		return handleServiceError(c, err, "Failed to create savings goal")
	}
	return c.JSON(http.StatusCreated, toGoalResponse(*goal))
}

// GetGoals handles GET /api/v1/goals
func (h *GoalHandler) GetGoals(c echo.Context) error {
	goals, err := h.savingsService.Goals()
	if err != nil {
		return handleServiceError(c, err, "Failed to get savings goals")
	}

	response := make([]GoalResponse, len(goals))
	for i, g := range goals {
		response[i] = toGoalResponse(g)
	}
	return c.JSON(http.StatusOK, response)
}

func toGoalResponse(g domain.SavingsGoal) GoalResponse {
	return GoalResponse{
		ID:              g.ID.String(),
		Target:          formatAmount(g.Target),
		MonthlySavings:  formatAmount(g.MonthlySavings),
		MonthsRemaining: g.MonthsRemaining,
		CreatedAt:       g.CreatedAt.Format(time.RFC3339),
	}
}
