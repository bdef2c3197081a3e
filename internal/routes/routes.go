package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/internal/handlers"
	"github.com/pftapp/pft-backend/internal/middleware"
)

// SetupRouter собирает все маршруты приложения на переданном движке.
func SetupRouter(r *gin.Engine, pool *pgxpool.Pool) {
	r.POST("/register", handlers.RegisterHandler(pool))
	r.POST("/login", handlers.LoginHandler(pool))

	api := r.Group("/", middleware.AuthRequired())

	api.GET("/me", handlers.MeHandler(pool))
	api.PUT("/profile/update", handlers.UpdateProfileHandler(pool))
	api.PATCH("/profile/update", handlers.UpdateProfileHandler(pool))
	api.POST("/profile/change-password", handlers.ChangePasswordHandler(pool))

	api.POST("/categories", handlers.CreateCategoryHandler(pool))
	api.GET("/categories", handlers.GetCategoriesHandler(pool))
	api.GET("/categories/:id", handlers.GetCategoryHandler(pool))
	api.PUT("/categories/:id", handlers.UpdateCategoryHandler(pool))
	api.DELETE("/categories/:id", handlers.DeleteCategoryHandler(pool))

	api.POST("/transactions", handlers.CreateTransactionHandler(pool))
	api.GET("/transactions", handlers.GetTransactionsHandler(pool))
	api.GET("/transactions/:id", handlers.GetTransactionHandler(pool))
	api.PUT("/transactions/:id", handlers.UpdateTransactionHandler(pool))
	api.DELETE("/transactions/:id", handlers.DeleteTransactionHandler(pool))

	api.POST("/budgets", handlers.CreateBudgetHandler(pool))
	api.GET("/budgets", handlers.GetBudgetsHandler(pool))
	api.GET("/budgets/:id", handlers.GetBudgetHandler(pool))
	api.PUT("/budgets/:id", handlers.UpdateBudgetHandler(pool))
	api.DELETE("/budgets/:id", handlers.DeleteBudgetHandler(pool))

	api.POST("/subscription-plans", handlers.CreateSubscriptionPlanHandler(pool))
	api.GET("/subscription-plans", handlers.GetSubscriptionPlansHandler(pool))
	api.GET("/subscription-plans/:id", handlers.GetSubscriptionPlanHandler(pool))
	api.PUT("/subscription-plans/:id", handlers.UpdateSubscriptionPlanHandler(pool))
	api.DELETE("/subscription-plans/:id", handlers.DeleteSubscriptionPlanHandler(pool))

	api.POST("/subscriptions", handlers.CreateSubscriptionHandler(pool))
	api.GET("/subscriptions", handlers.GetSubscriptionsHandler(pool))
	api.GET("/subscriptions/upcoming_renewals", handlers.UpcomingRenewalsHandler(pool))
	api.GET("/subscriptions/statistics", handlers.SubscriptionStatisticsHandler(pool))
	api.GET("/subscriptions/:id", handlers.GetSubscriptionHandler(pool))
	api.PUT("/subscriptions/:id", handlers.UpdateSubscriptionHandler(pool))
	api.DELETE("/subscriptions/:id", handlers.DeleteSubscriptionHandler(pool))

	api.POST("/savings-goals", handlers.CreateGoalHandler(pool))
	api.GET("/savings-goals", handlers.GetGoalsHandler(pool))
	api.GET("/savings-goals/:id", handlers.GetGoalHandler(pool))
	api.PUT("/savings-goals/:id", handlers.UpdateGoalHandler(pool))
	api.DELETE("/savings-goals/:id", handlers.DeleteGoalHandler(pool))
	api.POST("/savings-goals/:id/update_progress", handlers.UpdateGoalProgressHandler(pool))

	api.POST("/bill-reminders", handlers.CreateBillReminderHandler(pool))
	api.GET("/bill-reminders", handlers.GetBillRemindersHandler(pool))
	api.GET("/bill-reminders/upcoming", handlers.UpcomingBillRemindersHandler(pool))
	api.GET("/bill-reminders/:id", handlers.GetBillReminderHandler(pool))
	api.PUT("/bill-reminders/:id", handlers.UpdateBillReminderHandler(pool))
	api.DELETE("/bill-reminders/:id", handlers.DeleteBillReminderHandler(pool))
	api.POST("/bill-reminders/:id/mark_paid", handlers.MarkBillPaidHandler(pool))

	api.POST("/debt-accounts", handlers.CreateDebtAccountHandler(pool))
	api.GET("/debt-accounts", handlers.GetDebtAccountsHandler(pool))
	api.GET("/debt-accounts/:id", handlers.GetDebtAccountHandler(pool))
	api.PUT("/debt-accounts/:id", handlers.UpdateDebtAccountHandler(pool))
	api.DELETE("/debt-accounts/:id", handlers.DeleteDebtAccountHandler(pool))
	api.POST("/debt-accounts/:id/record_payment", handlers.RecordDebtPaymentHandler(pool))

	api.POST("/investments", handlers.CreateInvestmentHandler(pool))
	api.GET("/investments", handlers.GetInvestmentsHandler(pool))
	api.GET("/investments/portfolio_summary", handlers.PortfolioSummaryHandler(pool))
	api.GET("/investments/:id", handlers.GetInvestmentHandler(pool))
	api.PUT("/investments/:id", handlers.UpdateInvestmentHandler(pool))
	api.DELETE("/investments/:id", handlers.DeleteInvestmentHandler(pool))
	api.POST("/investments/:id/update_value", handlers.UpdateInvestmentValueHandler(pool))

	api.POST("/analytics/monthly_summary", handlers.MonthlySummaryHandler(pool))
	api.GET("/analytics/reports", handlers.GetReportsHandler(pool))
	api.GET("/analytics/reports/:id", handlers.GetReportHandler(pool))
	api.DELETE("/analytics/reports/:id", handlers.DeleteReportHandler(pool))
}
