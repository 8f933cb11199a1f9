package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/dafibh/pennywise/pennywise-backend/internal/service"
	"github.com/dafibh/pennywise/pennywise-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func newTestAnalyticsHandler(txs ...domain.Transaction) *AnalyticsHandler {
	transactionRepo := testutil.NewMockTransactionRepository(txs...)
	budgetService := service.NewBudgetService(testutil.NewMockBudgetRepository("Food", "300"), transactionRepo)
	savingsService := service.NewSavingsService(testutil.NewMockGoalRepository())
	return NewAnalyticsHandler(service.NewAnalyticsService(transactionRepo, budgetService, savingsService))
}

func analyticsFixture() []domain.Transaction {
	return []domain.Transaction{
		testutil.Expense("100", "Food", "2024-02-10"),
		testutil.Expense("150", "Food", "2024-03-05"),
		testutil.Expense("30", "Fun", "2024-03-06"),
		testutil.Income("2000", "Salary", "2024-03-01"),
	}
}

func get(t *testing.T, fn echo.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, fn(echo.New().NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)))
	return rec
}

func TestAnalyticsHandler_Summary(t *testing.T) {
	h := newTestAnalyticsHandler(analyticsFixture()...)

	rec := get(t, h.GetSummary, "/api/v1/analytics/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	var response []AmountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, []AmountResponse{{"Food", "250.00"}, {"Fun", "30.00"}}, response)

	rec = get(t, h.GetSummary, "/api/v1/analytics/summary?type=income")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, []AmountResponse{{"Salary", "2000.00"}}, response)

	rec = get(t, h.GetSummary, "/api/v1/analytics/summary?type=bogus")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyticsHandler_Monthly(t *testing.T) {
	h := newTestAnalyticsHandler(analyticsFixture()...)

	rec := get(t, h.GetMonthly, "/api/v1/analytics/monthly")
	var response []MonthlyAmountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, []MonthlyAmountResponse{{2, "100.00"}, {3, "180.00"}}, response)
}

func TestAnalyticsHandler_MonthlyMalformedDate(t *testing.T) {
	h := newTestAnalyticsHandler(testutil.Expense("1", "Food", "not-a-date"))

	rec := get(t, h.GetMonthly, "/api/v1/analytics/monthly")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyticsHandler_PeriodsAndTotals(t *testing.T) {
	h := newTestAnalyticsHandler(analyticsFixture()...)

	rec := get(t, h.GetPeriods, "/api/v1/analytics/periods?type=all")
	var periods []AmountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &periods))
	assert.Equal(t, []AmountResponse{{"2024-02", "100.00"}, {"2024-03", "2180.00"}}, periods)

	rec = get(t, h.GetTotals, "/api/v1/analytics/totals")
	var totals TotalsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &totals))
	assert.Equal(t, TotalsResponse{Income: "2000.00", Expenses: "280.00", Net: "1720.00"}, totals)
}

func TestAnalyticsHandler_Trends(t *testing.T) {
	h := newTestAnalyticsHandler(analyticsFixture()...)

	rec := get(t, h.GetTrends, "/api/v1/analytics/trends?year=2024&month=3")
	require.Equal(t, http.StatusOK, rec.Code)

	var response TrendsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "2024-03", response.Period)
	assert.Equal(t, "2024-02", response.PreviousPeriod)
	assert.Equal(t, []AmountResponse{{"Food", "50.00"}, {"Fun", "30.00"}}, response.Trends)
	require.Len(t, response.Insights, 2)
	assert.Equal(t, "increase", response.Insights[0].Kind)
	require.NotNil(t, response.Insights[0].Percent)
	assert.Equal(t, "50.00", *response.Insights[0].Percent)
	assert.Equal(t, "new_spending", response.Insights[1].Kind)
	assert.Nil(t, response.Insights[1].Percent)
	require.NotNil(t, response.Overall)
	assert.Equal(t, "You spent 80.00% more this month compared to last month.", response.Overall.Message)
}

func TestAnalyticsHandler_TrendsValidation(t *testing.T) {
	h := newTestAnalyticsHandler()

	for _, target := range []string{
		"/api/v1/analytics/trends?year=2024&month=13",
		"/api/v1/analytics/trends?year=2024",
		"/api/v1/analytics/trends?year=abc&month=1",
	} {
		rec := get(t, h.GetTrends, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestAnalyticsHandler_CurrentTrends(t *testing.T) {
	h := newTestAnalyticsHandler()

	rec := get(t, h.GetTrends, "/api/v1/analytics/trends")
	require.Equal(t, http.StatusOK, rec.Code)
	var response TrendsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Period)
	assert.Empty(t, response.Insights)
}

func TestAnalyticsHandler_Overview(t *testing.T) {
	h := newTestAnalyticsHandler(analyticsFixture()...)

	rec := get(t, h.GetOverview, "/api/v1/analytics/overview")
	require.Equal(t, http.StatusOK, rec.Code)

	var response OverviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "1720.00", response.Totals.Net)
	assert.Equal(t, []AmountResponse{{"Food", "250.00"}, {"Fun", "30.00"}}, response.Expenses)
	require.Len(t, response.Budgets, 1)
	assert.Equal(t, "50.00", response.Budgets[0].Remaining)
	assert.Empty(t, response.Alerts)
	assert.Empty(t, response.Goals)
}
