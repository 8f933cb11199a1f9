package handler

import (
	"github.com/dafibh/pennywise/pennywise-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, rateLimiter *middleware.RateLimiter, transactionHandler *TransactionHandler, budgetHandler *BudgetHandler, goalHandler *GoalHandler, analyticsHandler *AnalyticsHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")
	if rateLimiter != nil {
		api.Use(middleware.RateLimitMiddleware(rateLimiter))
	}

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.POST("/import", transactionHandler.ImportTransactions)
	transactions.GET("/export", transactionHandler.ExportTransactions)
	transactions.POST("/archive", transactionHandler.ArchiveTransactions)

	// Budget routes
	budgets := api.Group("/budgets")
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/usage", budgetHandler.GetUsage)
	budgets.GET("/alerts", budgetHandler.GetAlerts)
	budgets.GET("/status", budgetHandler.GetStatus)
	budgets.PUT("/:category", budgetHandler.SetBudget)

	// Savings goal routes
	goals := api.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)

	// Analytics routes
	analytics := api.Group("/analytics")
	analytics.GET("/summary", analyticsHandler.GetSummary)
	analytics.GET("/monthly", analyticsHandler.GetMonthly)
	analytics.GET("/periods", analyticsHandler.GetPeriods)
	analytics.GET("/totals", analyticsHandler.GetTotals)
	analytics.GET("/trends", analyticsHandler.GetTrends)
	analytics.GET("/overview", analyticsHandler.GetOverview)

	// WebSocket events
	if wsHandler != nil {
		e.GET("/ws", wsHandler.HandleWS)
	}
}
