package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/models"
)

// MonthlySummaryHandler считает сводку за текущий календарный месяц,
// сохраняет её неизменяемым отчётом и возвращает вместе с данными.
func MonthlySummaryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		start, end := models.MonthBounds(time.Now())

		transactions, err := database.GetTransactionsByPeriod(pool, userID, start, end)
		if err != nil {
			log.Printf("Ошибка получения транзакций за период: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка расчёта сводки"})
			return
		}

		summary := models.BuildMonthlySummary(transactions)
		payload, err := json.Marshal(summary)
		if err != nil {
			log.Printf("Ошибка сериализации сводки: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка расчёта сводки"})
			return
		}

		report := models.AnalyticsReport{
			UserID:     userID,
			StartDate:  start,
			EndDate:    end,
			ReportType: "monthly",
			Data:       payload,
		}
		if err := database.CreateReport(pool, &report); err != nil {
			log.Printf("Ошибка сохранения отчёта: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка сохранения отчёта"})
			return
		}
		c.JSON(http.StatusCreated, report)
	}
}

func GetReportsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		reports, err := database.GetReportsByUserID(pool, currentUserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении отчётов"})
			return
		}
		c.JSON(http.StatusOK, reports)
	}
}

func GetReportHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		report, err := database.GetReportByID(pool, id, currentUserID(c))
		if err != nil {
			respondDBError(c, err, "Отчёт не найден")
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func DeleteReportHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := database.DeleteReport(pool, id, currentUserID(c)); err != nil {
			respondDBError(c, err, "Отчёт не найден")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Отчёт успешно удалён"})
	}
}
