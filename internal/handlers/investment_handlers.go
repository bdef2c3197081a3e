package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/models"
	"github.com/shopspring/decimal"
)

func validateInvestment(c *gin.Context, investment *models.Investment) bool {
	if !models.ValidInvestmentType(investment.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимый тип инвестиции"})
		return false
	}
	if !investment.PurchasePrice.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Цена покупки должна быть положительной"})
		return false
	}
	if !investment.Quantity.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Количество должно быть положительным"})
		return false
	}
	return true
}

// CreateInvestmentHandler создаёт инвестицию вместе с начальной точкой
// оценки на дату покупки.
func CreateInvestmentHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var investment models.Investment
		if err := c.ShouldBindJSON(&investment); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат инвестиции"})
			return
		}
		if !validateInvestment(c, &investment) {
			return
		}
		if investment.PurchaseDate.IsZero() {
			investment.PurchaseDate = time.Now()
		}

		investment.UserID = currentUserID(c)
		if err := database.CreateInvestment(pool, &investment); err != nil {
			log.Printf("Ошибка при создании инвестиции: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании инвестиции"})
			return
		}
		c.JSON(http.StatusCreated, investment)
	}
}

func GetInvestmentsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		investments, err := database.GetInvestmentsByUserID(pool, currentUserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении инвестиций"})
			return
		}
		c.JSON(http.StatusOK, investments)
	}
}

func GetInvestmentHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		investment, err := database.GetInvestmentByID(pool, id, currentUserID(c))
		if err != nil {
			respondDBError(c, err, "Инвестиция не найдена")
			return
		}
		c.JSON(http.StatusOK, investment)
	}
}

func UpdateInvestmentHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var investment models.Investment
		if err := c.ShouldBindJSON(&investment); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат инвестиции"})
			return
		}
		if !validateInvestment(c, &investment) {
			return
		}

		investment.ID = id
		investment.UserID = currentUserID(c)
		if err := database.UpdateInvestment(pool, &investment); err != nil {
			respondDBError(c, err, "Инвестиция не найдена")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Инвестиция успешно обновлена"})
	}
}

func DeleteInvestmentHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := database.DeleteInvestment(pool, id, currentUserID(c)); err != nil {
			respondDBError(c, err, "Инвестиция не найдена")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Инвестиция успешно удалена"})
	}
}

// UpdateInvestmentValueHandler добавляет точку оценки; история не переписывается.
func UpdateInvestmentValueHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req struct {
			Value decimal.Decimal `json:"value"`
			Date  *time.Time      `json:"date"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных"})
			return
		}
		if req.Value.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Оценка не может быть отрицательной"})
			return
		}

		value := models.InvestmentValue{Value: req.Value, Date: time.Now()}
		if req.Date != nil {
			value.Date = *req.Date
		}
		investment, err := database.RecordInvestmentValue(pool, id, currentUserID(c), &value)
		if err != nil {
			respondDBError(c, err, "Инвестиция не найдена")
			return
		}
		c.JSON(http.StatusOK, investment)
	}
}

// PortfolioSummaryHandler — сводка портфеля по последним оценкам.
func PortfolioSummaryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		investments, err := database.GetInvestmentsWithCurrentValue(pool, currentUserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при расчёте сводки портфеля"})
			return
		}
		c.JSON(http.StatusOK, models.BuildPortfolioSummary(investments))
	}
}
