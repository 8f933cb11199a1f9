package handler

import (
	"net/http"
	"strconv"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/dafibh/pennywise/pennywise-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// AnalyticsHandler handles summary, trend and insight requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// MonthlyAmountResponse is the total of one calendar month
type MonthlyAmountResponse struct {
	Month  int    `json:"month"`
	Amount string `json:"amount"`
}

// TotalsResponse represents overall income and expenses
type TotalsResponse struct {
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Net      string `json:"net"`
}

// InsightResponse represents one generated insight
type InsightResponse struct {
	Category string  `json:"category,omitempty"`
	Kind     string  `json:"kind"`
	Percent  *string `json:"percent,omitempty"`
	Message  string  `json:"message"`
}

// TrendsResponse compares two consecutive months
type TrendsResponse struct {
	Period         string            `json:"period"`
	PreviousPeriod string            `json:"previousPeriod"`
	Current        []AmountResponse  `json:"current"`
	Previous       []AmountResponse  `json:"previous"`
	Trends         []AmountResponse  `json:"trends"`
	Insights       []InsightResponse `json:"insights"`
	Overall        *InsightResponse  `json:"overall,omitempty"`
}

// OverviewResponse bundles the figures of the overview screen
type OverviewResponse struct {
	Totals   TotalsResponse         `json:"totals"`
	Expenses []AmountResponse       `json:"expenses"`
	Trends   TrendsResponse         `json:"trends"`
	Budgets  []BudgetStatusResponse `json:"budgets"`
	Alerts   []AlertResponse        `json:"alerts"`
	Goals    []GoalResponse         `json:"goals"`
}

// GetSummary handles GET /api/v1/analytics/summary?type=
func (h *AnalyticsHandler) GetSummary(c echo.Context) error {
	kind, err := parseSummaryKind(c.QueryParam("type"))
	if err != nil {
		return handleServiceError(c, err, "Failed to get summary")
	}

	summary, err := h.analyticsService.Summary(kind)
	if err != nil {
		return handleServiceError(c, err, "Failed to get summary")
	}
	return c.JSON(http.StatusOK, toCategoryAmounts(summary))
}

// GetMonthly handles GET /api/v1/analytics/monthly?type=
func (h *AnalyticsHandler) GetMonthly(c echo.Context) error {
	kind, err := parseSummaryKind(c.QueryParam("type"))
	if err != nil {
		return handleServiceError(c, err, "Failed to get monthly summary")
	}

	monthly, err := h.analyticsService.Monthly(kind)
	if err != nil {
		return handleServiceError(c, err, "Failed to get monthly summary")
	}

	entries := monthly.Entries()
	response := make([]MonthlyAmountResponse, len(entries))
	for i, e := range entries {
		response[i] = MonthlyAmountResponse{Month: e.Key, Amount: formatAmount(e.Amount)}
	}
	return c.JSON(http.StatusOK, response)
}

// GetPeriods handles GET /api/v1/analytics/periods?type=
func (h *AnalyticsHandler) GetPeriods(c echo.Context) error {
	kind, err := parseSummaryKind(c.QueryParam("type"))
	if err != nil {
		return handleServiceError(c, err, "Failed to get period summary")
	}

	periods, err := h.analyticsService.Periods(kind)
	if err != nil {
		return handleServiceError(c, err, "Failed to get period summary")
	}
	return c.JSON(http.StatusOK, toCategoryAmounts(periods))
}

// GetTotals handles GET /api/v1/analytics/totals
func (h *AnalyticsHandler) GetTotals(c echo.Context) error {
	totals, err := h.analyticsService.Totals()
	if err != nil {
		return handleServiceError(c, err, "Failed to get totals")
	}
	return c.JSON(http.StatusOK, toTotalsResponse(totals))
}

// GetTrends handles GET /api/v1/analytics/trends?year=&month=.
// Without both parameters the current month is compared with the previous one.
func (h *AnalyticsHandler) GetTrends(c echo.Context) error {
	yearParam, monthParam := c.QueryParam("year"), c.QueryParam("month")

	var (
		report *domain.TrendReport
		err    error
	)
	if yearParam == "" && monthParam == "" {
		report, err = h.analyticsService.CurrentTrends()
	} else {
		year, yErr := strconv.Atoi(yearParam)
		if yErr != nil || year < 1 {
			return NewValidationError(c, "Invalid year", []ValidationError{
				{Field: "year", Message: "Year must be a positive number"},
			})
		}
		month, mErr := strconv.Atoi(monthParam)
		if mErr != nil || month < 1 || month > 12 {
			return NewValidationError(c, "Invalid month", []ValidationError{
				{Field: "month", Message: "Month must be between 1 and 12"},
			})
		}
		report, err = h.analyticsService.Trends(year, month)
	}
	if err != nil {
		return handleServiceError(c, err, "Failed to get trends")
	}
	return c.JSON(http.StatusOK, toTrendsResponse(report))
}

// GetOverview handles GET /api/v1/analytics/overview
func (h *AnalyticsHandler) GetOverview(c echo.Context) error {
	overview, err := h.analyticsService.Overview(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "Failed to get overview")
	}

	goals := make([]GoalResponse, len(overview.Goals))
	for i, g := range overview.Goals {
		goals[i] = toGoalResponse(g)
	}
	return c.JSON(http.StatusOK, OverviewResponse{
		Totals:   toTotalsResponse(overview.Totals),
		Expenses: toCategoryAmounts(overview.Summary),
		Trends:   toTrendsResponse(overview.Trends),
		Budgets:  toStatusResponses(overview.Budgets),
		Alerts:   toAlertResponses(overview.Alerts),
		Goals:    goals,
	})
}

// parseSummaryKind defaults to expenses, "all" selects every transaction
func parseSummaryKind(s string) (domain.TransactionType, error) {
	if s == "" {
		return domain.TransactionTypeExpense, nil
	}
	return parseKind(s)
}

func toTotalsResponse(t domain.Totals) TotalsResponse {
	return TotalsResponse{
		Income:   formatAmount(t.Income),
		Expenses: formatAmount(t.Expenses),
		Net:      formatAmount(t.Net),
	}
}

func toInsightResponse(i domain.Insight) InsightResponse {
	resp := InsightResponse{
		Category: i.Category,
		Kind:     string(i.Kind),
		Message:  i.Message,
	}
	if i.Percent != nil {
		pct := i.Percent.StringFixed(2)
		resp.Percent = &pct
	}
	return resp
}

func toTrendsResponse(r *domain.TrendReport) TrendsResponse {
	insights := make([]InsightResponse, len(r.Insights))
	for i, in := range r.Insights {
		insights[i] = toInsightResponse(in)
	}
	resp := TrendsResponse{
		Period:         r.Period,
		PreviousPeriod: r.PreviousPeriod,
		Current:        toCategoryAmounts(r.Current),
		Previous:       toCategoryAmounts(r.Previous),
		Trends:         toCategoryAmounts(r.Trend),
		Insights:       insights,
	}
	if r.Overall != nil {
		overall := toInsightResponse(*r.Overall)
		resp.Overall = &overall
	}
	return resp
}
